package renderer

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		severity ext_debug_utils.DebugUtilsMessageSeverityFlags
		want     logrus.Level
	}{
		{ext_debug_utils.SeverityError, logrus.ErrorLevel},
		{ext_debug_utils.SeverityWarning, logrus.WarnLevel},
		{ext_debug_utils.SeverityInfo, logrus.DebugLevel},
		{ext_debug_utils.SeverityVerbose, logrus.TraceLevel},
	}

	for _, tt := range tests {
		if got := severityLevel(tt.severity); got != tt.want {
			t.Errorf("severityLevel(%v) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestDebugMessengerRequestsAllMessages(t *testing.T) {
	s := &setup{ctx: &Context{}}
	options := s.debugMessengerOptions()

	allSeverities := ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning |
		ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityVerbose
	if options.MessageSeverity != allSeverities {
		t.Errorf("severity mask %v misses severities", options.MessageSeverity)
	}

	allTypes := ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance
	if options.MessageType != allTypes {
		t.Errorf("type mask %v misses message types", options.MessageType)
	}

	if options.UserCallback == nil {
		t.Error("no callback registered")
	}
}
