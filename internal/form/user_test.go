package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crudadmin/internal/domain"
	"crudadmin/internal/form"
)

func TestUserFormCreateRequiresPassword(t *testing.T) {
	var f form.UserForm
	f.OpenCreate()
	f.Apply(form.UserInput{Name: "Ann", Email: "ann@example.com", Password: "  "})
	_, ok := f.Submit()
	assert.False(t, ok)

	f.Apply(form.UserInput{Name: "Ann", Email: "ann@example.com", Password: "s3cret"})
	payload, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, "s3cret", payload.Password)
}

func TestUserFormEditLeavesPasswordBlank(t *testing.T) {
	var f form.UserForm
	f.OpenEdit(domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"})
	assert.Empty(t, f.Data().Password)
	assert.Equal(t, "Bob", f.Data().Name)

	payload, ok := f.Submit()
	require.True(t, ok, "blank password is allowed on edit")
	assert.Empty(t, payload.Password)
	assert.Nil(t, payload.AsUpdate().Password)
}

func TestUserFormEditWhitespacePasswordIsNoChange(t *testing.T) {
	var f form.UserForm
	f.OpenEdit(domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"})
	f.Apply(form.UserInput{Name: "Bob", Email: "bob@example.com", Password: "   "})
	payload, ok := f.Submit()
	require.True(t, ok)
	assert.Empty(t, payload.Password)
}

func TestUserFormRequiredFields(t *testing.T) {
	var f form.UserForm
	f.OpenEdit(domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"})
	f.Apply(form.UserInput{Name: "Bob", Email: " "})
	_, ok := f.Submit()
	assert.False(t, ok)

	f.Close()
	assert.Equal(t, form.Closed, f.State())
	_, editing := f.Editing()
	assert.False(t, editing)
}
