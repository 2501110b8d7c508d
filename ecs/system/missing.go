package system

import "go.uber.org/zap"

// missingLog reports a failed singleton lookup once until the lookup
// succeeds again, so a missing entity does not flood the log every tick.
type missingLog struct {
	what   string
	logged bool
}

func (m *missingLog) fail(logger *zap.Logger, err error) {
	if m.logged {
		return
	}
	m.logged = true
	logger.Warn("skipping tick", zap.String("lookup", m.what), zap.Error(err))
}

func (m *missingLog) ok() {
	m.logged = false
}
