package requests

import (
	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// UserCreate is a validated sign-up body. Password is still plain text.
type UserCreate struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email"    validate:"required"`
	Password  string `json:"password" validate:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// NewUserCreate validates a sign-up body. Missing fields are reported in the
// order username, email, password.
func NewUserCreate(raw map[string]any) (UserCreate, error) {
	in := UserCreate{}
	in.Username, _ = trimmed(raw, usernameKeys...)
	in.Email, _ = trimmed(raw, emailKeys...)
	in.Password, _ = trimmed(raw, passwordKeys...)
	if v, ok := first(raw, "firstname"); ok {
		in.Firstname = text(v)
	}
	if v, ok := first(raw, "lastname"); ok {
		in.Lastname = text(v)
	}

	missing := validate.Struct(in).Fields("required")
	if len(missing) > 0 {
		return UserCreate{}, &ValidationError{
			Message:      "Missing mandatory data",
			Missing:      missing,
			LoginAttempt: len(missing) == 1 && missing[0] == "username",
		}
	}
	return in, nil
}

// UserPatch is a validated partial update. Nil fields were not supplied.
// Password is still plain text.
type UserPatch struct {
	Username  *string
	Email     *string
	Password  *string
	Firstname *string
	Lastname  *string
	Status    *string
}

// Empty reports whether no field was supplied.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil &&
		p.Firstname == nil && p.Lastname == nil && p.Status == nil
}

// NewUserPatch validates a partial update. Only supplied, non-null fields
// are included; username, email and password must not be blank.
func NewUserPatch(raw map[string]any) (UserPatch, error) {
	var p UserPatch

	if v, ok := trimmed(raw, usernameKeys...); ok {
		if v == "" {
			return UserPatch{}, invalid("Invalid username")
		}
		p.Username = ptr(v)
	}
	if v, ok := trimmed(raw, emailKeys...); ok {
		if v == "" {
			return UserPatch{}, invalid("Invalid email")
		}
		p.Email = ptr(v)
	}
	if v, ok := first(raw, "firstname"); ok {
		p.Firstname = ptr(text(v))
	}
	if v, ok := first(raw, "lastname"); ok {
		p.Lastname = ptr(text(v))
	}
	if v, ok := first(raw, "status"); ok {
		p.Status = ptr(models.NormalizeUserStatus(text(v)))
	}
	if v, ok := trimmed(raw, passwordKeys...); ok {
		if v == "" {
			return UserPatch{}, invalid("Invalid password")
		}
		p.Password = ptr(v)
	}

	if p.Empty() {
		return UserPatch{}, invalid("No fields to update")
	}
	return p, nil
}

// NewProfilePatch is NewUserPatch without status: users cannot change their
// own account status.
func NewProfilePatch(raw map[string]any) (UserPatch, error) {
	p, err := NewUserPatch(raw)
	if err != nil {
		return UserPatch{}, err
	}
	p.Status = nil
	if p.Empty() {
		return UserPatch{}, invalid("No fields to update")
	}
	return p, nil
}

// UserReplace is a validated full replacement. Password is optional and
// still plain text.
type UserReplace struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email"    validate:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Status    string `json:"status"`
	Password  *string
}

// NewUserReplace validates a full replacement: username and email are
// mandatory, names reset to "" when absent and status defaults to active.
func NewUserReplace(raw map[string]any) (UserReplace, error) {
	in := UserReplace{Status: models.UserActive}
	in.Username, _ = trimmed(raw, usernameKeys...)
	in.Email, _ = trimmed(raw, emailKeys...)

	if missing := validate.Struct(in).Fields("required"); len(missing) > 0 {
		return UserReplace{}, &ValidationError{
			Message: "Missing required fields: username, email",
			Missing: missing,
		}
	}

	if v, ok := first(raw, "firstname"); ok {
		in.Firstname = text(v)
	}
	if v, ok := first(raw, "lastname"); ok {
		in.Lastname = text(v)
	}
	if v, ok := first(raw, "status"); ok {
		in.Status = models.NormalizeUserStatus(text(v))
	}
	if v, ok := trimmed(raw, passwordKeys...); ok {
		if v == "" {
			return UserReplace{}, invalid("Invalid password")
		}
		in.Password = ptr(v)
	}
	return in, nil
}

// Login is a validated credentials body.
type Login struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NewLogin validates a login body.
func NewLogin(raw map[string]any) (Login, error) {
	in := Login{}
	in.Email, _ = trimmed(raw, emailKeys...)
	in.Password, _ = trimmed(raw, passwordKeys...)

	if missing := validate.Struct(in).Fields("required"); len(missing) > 0 {
		return Login{}, &ValidationError{Message: "Missing mandatory data", Missing: missing}
	}
	return in, nil
}
