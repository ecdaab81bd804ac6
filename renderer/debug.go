package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

func (s *setup) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning |
			ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityVerbose,
		MessageType:  ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback: s.ctx.logDebug,
	}
}

func (s *setup) setupDebugMessenger() error {
	if !s.cfg.EnableValidation {
		return nil
	}

	s.ctx.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(s.ctx.instance)

	var err error
	s.ctx.debugMessenger, _, err = s.ctx.debugDriver.CreateDebugUtilsMessenger(nil, s.debugMessengerOptions())
	if err != nil {
		return errors.Wrap(err, "creating debug messenger")
	}

	s.ctx.teardown.push("debug messenger", func() {
		s.ctx.debugDriver.DestroyDebugUtilsMessenger(s.ctx.debugMessenger, nil)
	})

	return nil
}

// severityLevel maps a driver message severity onto a log level. Severities
// are ordinal bitflags, so the comparison is "at least this severe".
func severityLevel(severity ext_debug_utils.DebugUtilsMessageSeverityFlags) logrus.Level {
	switch {
	case severity >= ext_debug_utils.SeverityError:
		return logrus.ErrorLevel
	case severity >= ext_debug_utils.SeverityWarning:
		return logrus.WarnLevel
	case severity >= ext_debug_utils.SeverityInfo:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// logDebug receives validation and performance diagnostics synchronously
// from the driver. It only ever forwards them; returning false tells the
// driver to continue the triggering call unchanged.
func (c *Context) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	c.log.WithField("type", msgType.String()).Log(severityLevel(severity), data.Message)
	return false
}
