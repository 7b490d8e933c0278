package main

import (
	"log"
	"os"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/setting"
	aisvc "github.com/trezcool/hatari/services/ai"
	emailsvc "github.com/trezcool/hatari/services/email"
	logsvc "github.com/trezcool/hatari/services/logger"
	notifysvc "github.com/trezcool/hatari/services/notify"
	smssvc "github.com/trezcool/hatari/services/sms"
	"github.com/trezcool/hatari/storage"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	conf := core.LoadConfig()
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	appLogger := logsvc.NewStdLogger(logger)

	// set up storage
	store, err := storage.Open(conf)
	errAndDie(err)
	defer store.Close()

	studentRepo := storage.NewStudentRepository(store)
	alertRepo := storage.NewAlertRepository(store)
	predRepo := storage.NewPredictionRepository(store)
	settingRepo := storage.NewSettingRepository(store)

	settingSvc := setting.NewService(settingRepo)

	keyFunc := func() (string, error) {
		key, err := settingSvc.APIKey()
		if err != nil {
			return "", err
		}
		if key == "" {
			key = conf.GeminiAPIKey
		}
		return key, nil
	}
	predSvc := prediction.NewService(aisvc.NewGeminiClient(conf, keyFunc, appLogger), appLogger)

	alertSvc := alert.NewService(
		alertRepo, studentRepo, predRepo, settingSvc, predSvc,
		emailsvc.NewConsoleService(conf, appLogger),
		smssvc.NewConsoleService(appLogger),
		notifysvc.NewConsoleNotifier(appLogger),
		appLogger,
	)

	// start CLI
	cli := commandLine{
		studentRepo: studentRepo,
		alertRepo:   alertRepo,
		predRepo:    predRepo,
		alertSvc:    alertSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
