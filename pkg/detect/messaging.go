package detect

import (
	"fmt"
	"strings"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// MessagingDetector is the generic detector for desktop messaging apps. It
// looks for call keywords in window titles and, for apps whose short-lived
// call windows often carry no distinguishing title, treats two or more open
// windows as a weak positive signal. That trades false positives for not
// missing brief calls.
type MessagingDetector struct {
	name            string
	process         string
	platform        string
	keywords        []string
	windowCountHint bool
}

// NewTelegramDetector creates the Telegram call detector.
func NewTelegramDetector() *MessagingDetector {
	return &MessagingDetector{
		name:            "telegram",
		process:         "Telegram",
		platform:        "Telegram",
		keywords:        []string{"Call", "call", "Calling"},
		windowCountHint: true,
	}
}

// NewWhatsAppDetector creates the WhatsApp call detector.
func NewWhatsAppDetector() *MessagingDetector {
	return &MessagingDetector{
		name:     "whatsapp",
		process:  "WhatsApp",
		platform: "WhatsApp",
		keywords: []string{"Call", "Calling", "Ringing"},
	}
}

// NewSignalDetector creates the Signal call detector.
func NewSignalDetector() *MessagingDetector {
	return &MessagingDetector{
		name:            "signal",
		process:         "Signal",
		platform:        "Signal",
		keywords:        []string{"Call", "call", "Calling"},
		windowCountHint: true,
	}
}

// Name returns the detector identifier.
func (d *MessagingDetector) Name() string { return d.name }

// Check inspects the application's windows for an active call.
func (d *MessagingDetector) Check(ins interfaces.AppInspector) Result {
	q := ins.WindowTitles(d.process)
	if q.Err != nil {
		return Result{Outcome: QueryFailed, Detail: q.Err.Error()}
	}
	if !q.Running {
		return Result{Detail: "not running"}
	}

	for _, title := range q.Titles {
		for _, kw := range d.keywords {
			if strings.Contains(title, kw) {
				return Result{Outcome: Positive, Platform: d.platform, Detail: title}
			}
		}
	}

	if d.windowCountHint && len(q.Titles) >= 2 {
		return Result{
			Outcome:  Positive,
			Platform: d.platform,
			Detail:   fmt.Sprintf("%d windows open", len(q.Titles)),
		}
	}

	return Result{}
}
