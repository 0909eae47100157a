package services

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
	// NoticeConfirm asks the user to confirm a destructive action.
	NoticeConfirm NoticeKind = "confirm"
)

// Notice is a message surfaced to the user as an alert or toast.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title,omitempty"`
	Message string     `json:"message"`
}

// Presenter receives notices from controllers.
type Presenter interface {
	Notify(n Notice)
}

// Screen identifies a navigation target.
type Screen string

const (
	ScreenHome           Screen = "Home_Intern"
	ScreenRegister       Screen = "Register_Intern"
	ScreenForgotPassword Screen = "ForgotPassword_Intern"
)

// Navigator receives navigation signals from controllers.
type Navigator interface {
	GoBack()
	NavigateTo(screen Screen)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(n Notice)

func (f PresenterFunc) Notify(n Notice) { f(n) }
