package screen

// Render statuses. Every fetch-driven view renders exactly one of these;
// a failure is never a blank screen, and loaded-but-empty is distinct from
// failed.
const (
	StatusIdle    = "idle"
	StatusLoading = "loading"
	StatusError   = "error"
	StatusEmpty   = "empty"
	StatusOK      = "ok"
)

func statusFor(phase Phase, empty bool) string {
	switch phase {
	case Loading:
		return StatusLoading
	case Failed:
		return StatusError
	case Loaded:
		if empty {
			return StatusEmpty
		}
		return StatusOK
	default:
		return StatusIdle
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
