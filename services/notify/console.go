// Package notifysvc implements the local notification channel. The
// dashboard's browser notifications have no server-side equivalent, so the
// console notifier logs the notification; failures and disabled settings
// are handled upstream and never fail the triggering operation.
package notifysvc

import (
	"fmt"

	"github.com/trezcool/hatari/core"
)

type consoleNotifier struct {
	logger core.Logger
}

var _ core.Notifier = (*consoleNotifier)(nil)

func NewConsoleNotifier(logger core.Logger) core.Notifier {
	return &consoleNotifier{logger: logger}
}

func (n consoleNotifier) Notify(title, body string) {
	n.logger.Info(fmt.Sprintf("Notification: %s: %s", title, body))
}
