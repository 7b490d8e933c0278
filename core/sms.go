package core

type (
	SMSMessage struct {
		To   string
		Body string
	}

	// SMSService is any service that can send text messages. Delivery is
	// best-effort; failures never propagate to the caller.
	SMSService interface {
		SendMessages(messages ...*SMSMessage)
	}
)
