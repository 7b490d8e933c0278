// Package smssvc holds the SMS delivery integration point. Actual delivery
// (Twilio or similar) is an external collaborator's responsibility; the
// console service only logs the payload it would have sent.
package smssvc

import (
	"fmt"
	"sync"

	"github.com/trezcool/hatari/core"
)

var (
	// SentMessages collects everything the console service "sent"; tests
	// inspect it.
	SentMessages = make([]core.SMSMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	logger core.Logger
}

var _ core.SMSService = (*consoleService)(nil)

func NewConsoleService(logger core.Logger) core.SMSService {
	return &consoleService{logger: logger}
}

func (svc consoleService) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		svc.logger.Info(fmt.Sprintf("SMS Alert (delivery stub): to=%q body=%q", msg.To, msg.Body))
		mu.Lock()
		SentMessages = append(SentMessages, *msg)
		mu.Unlock()
	}
}
