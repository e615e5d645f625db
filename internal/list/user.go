package list

import (
	"context"

	"crudadmin/internal/domain"
	"crudadmin/internal/form"
)

type UserResource = Resource[domain.User, domain.UserCreate, domain.UserUpdate]

type UserList struct {
	*List[domain.User, domain.UserCreate, domain.UserUpdate]
	form form.UserForm
}

func NewUserList(res UserResource) *UserList {
	return &UserList{List: New(res, "user", "users")}
}

func (l *UserList) Form() *form.UserForm { return &l.form }

func (l *UserList) OpenCreate() { l.form.OpenCreate() }

func (l *UserList) OpenEdit(id int) error {
	u, ok := l.Find(id)
	if !ok {
		return ErrNoRecord
	}
	l.form.OpenEdit(u)
	return nil
}

func (l *UserList) Submit(ctx context.Context) error {
	payload, ok := l.form.Submit()
	if !ok {
		return ErrIncomplete
	}
	var err error
	if rec, editing := l.form.Editing(); editing {
		err = l.update(ctx, rec.ID, payload.AsUpdate())
	} else {
		err = l.create(ctx, payload)
	}
	if err != nil {
		return err
	}
	l.form.Close()
	return nil
}
