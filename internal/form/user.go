package form

import (
	"crudadmin/internal/domain"
	"crudadmin/internal/validate"
)

type UserInput struct {
	Name     string
	Email    string
	Password string
}

type UserForm struct {
	state   State
	editing *domain.User
	data    domain.UserCreate
}

func (f *UserForm) State() State { return f.state }
func (f *UserForm) IsOpen() bool { return f.state == Open }

func (f *UserForm) OpenCreate() {
	f.state = Open
	f.editing = nil
	f.data = domain.UserCreate{}
}

// OpenEdit never carries the password over; a blank password on submit
// means "keep the current one".
func (f *UserForm) OpenEdit(u domain.User) {
	f.state = Open
	f.editing = &u
	f.data = domain.UserCreate{Name: u.Name, Email: u.Email}
}

func (f *UserForm) Close() {
	*f = UserForm{}
}

func (f *UserForm) Editing() (domain.User, bool) {
	if f.editing == nil {
		return domain.User{}, false
	}
	return *f.editing, true
}

func (f *UserForm) Data() domain.UserCreate { return f.data }

func (f *UserForm) Apply(in UserInput) {
	if f.state != Open {
		return
	}
	f.data = domain.UserCreate{Name: in.Name, Email: in.Email, Password: in.Password}
}

// Submit requires name and email, and a password when creating.
func (f *UserForm) Submit() (domain.UserCreate, bool) {
	if f.state != Open {
		return domain.UserCreate{}, false
	}
	if !validate.AllRequired(f.data.Name, f.data.Email) {
		return domain.UserCreate{}, false
	}
	if f.editing == nil && !validate.AllRequired(f.data.Password) {
		return domain.UserCreate{}, false
	}
	if _, ok := validate.Required(f.data.Password); !ok {
		out := f.data
		out.Password = ""
		return out, true
	}
	return f.data, true
}
