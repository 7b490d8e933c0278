package main

import (
	"log"
	"os"

	echoapi "github.com/trezcool/hatari/apps/api/echo"
	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/setting"
	"github.com/trezcool/hatari/core/student"
	"github.com/trezcool/hatari/sampledata"
	aisvc "github.com/trezcool/hatari/services/ai"
	emailsvc "github.com/trezcool/hatari/services/email"
	logsvc "github.com/trezcool/hatari/services/logger"
	notifysvc "github.com/trezcool/hatari/services/notify"
	smssvc "github.com/trezcool/hatari/services/sms"
	"github.com/trezcool/hatari/storage"
)

func main() {
	conf := core.LoadConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up storage
	store, err := storage.Open(conf)
	errAndDie(err)
	defer store.Close()

	studentRepo := storage.NewStudentRepository(store)
	alertRepo := storage.NewAlertRepository(store)
	predRepo := storage.NewPredictionRepository(store)
	settingRepo := storage.NewSettingRepository(store)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	smsSvc := smssvc.NewConsoleService(logger)
	notifier := notifysvc.NewConsoleNotifier(logger)

	settingSvc := setting.NewService(settingRepo)
	studentSvc := student.NewService(studentRepo, logger)

	// the key saved through the settings API wins; the env var is a fallback
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
	gemini := aisvc.NewGeminiClient(conf, keyFunc, logger)
	predSvc := prediction.NewService(gemini, logger)

	alertSvc := alert.NewService(
		alertRepo, studentRepo, predRepo, settingSvc, predSvc,
		mailSvc, smsSvc, notifier, logger,
	)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:       conf,
			StudentSvc: studentSvc,
			AlertSvc:   alertSvc,
			SettingSvc: settingSvc,
			PredRepo:   predRepo,
			Logger:     logger,
			SeedFunc: func(count int) error {
				return sampledata.Seed(studentRepo, alertRepo, predRepo, count, 0)
			},
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
