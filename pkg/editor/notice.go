package editor

import "fmt"

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message for the user.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Message)
}

// Update is the outcome of one dispatched Action.
type Update struct {
	Notices []Notice

	// ListChanged means labels or selection changed.
	ListChanged bool
	// FormChanged means the form was rebuilt and widgets must be recreated.
	FormChanged bool
	// BodyChanged means the markdown body was replaced.
	BodyChanged bool

	// Err is the failure behind the first error or warning notice, if any.
	Err error
}

func (u *Update) info(title, msg string) {
	u.Notices = append(u.Notices, Notice{Level: LevelInfo, Title: title, Message: msg})
}

func (u *Update) warn(title, msg string, err error) {
	u.Notices = append(u.Notices, Notice{Level: LevelWarning, Title: title, Message: msg})
	if u.Err == nil {
		u.Err = err
	}
}

func (u *Update) fail(title, msg string, err error) {
	u.Notices = append(u.Notices, Notice{Level: LevelError, Title: title, Message: msg})
	if u.Err == nil {
		u.Err = err
	}
}

// Merge folds another update into u.
func (u *Update) Merge(o Update) {
	u.Notices = append(u.Notices, o.Notices...)
	u.ListChanged = u.ListChanged || o.ListChanged
	u.FormChanged = u.FormChanged || o.FormChanged
	u.BodyChanged = u.BodyChanged || o.BodyChanged
	if u.Err == nil {
		u.Err = o.Err
	}
}
