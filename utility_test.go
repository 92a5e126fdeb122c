// FILE: utility_test.go
package glint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtErrorfPrefix(t *testing.T) {
	err := fmtErrorf("something broke: %d", 7)
	assert.Equal(t, "glint: something broke: 7", err.Error())

	err = fmtErrorf("glint: already prefixed")
	assert.Equal(t, "glint: already prefixed", err.Error())
}

func TestCombineErrors(t *testing.T) {
	e1 := errors.New("one")
	e2 := errors.New("two")

	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, e1, combineErrors(e1, nil))
	assert.Equal(t, e2, combineErrors(nil, e2))

	both := combineErrors(e1, e2)
	assert.Contains(t, both.Error(), "one")
	assert.Contains(t, both.Error(), "two")
	assert.ErrorIs(t, both, e2)
}

func TestGoroutineID(t *testing.T) {
	id := goroutineID()
	assert.Regexp(t, `^\d+$`, id)

	other := make(chan string, 1)
	go func() { other <- goroutineID() }()
	assert.NotEqual(t, id, <-other)
}

func TestFuncBase(t *testing.T) {
	assert.Equal(t, "glint.(*Capture).Close",
		funcBase("github.com/glintlog/glint.(*Capture).Close"))
	assert.Equal(t, "main.main", funcBase("main.main"))
}

func TestParseKeyValue(t *testing.T) {
	k, v, err := parseKeyValue(" log_dir = /tmp ")
	require.NoError(t, err)
	assert.Equal(t, "log_dir", k)
	assert.Equal(t, "/tmp", v)

	_, _, err = parseKeyValue("no-equals")
	assert.Error(t, err)

	_, _, err = parseKeyValue("=value")
	assert.Error(t, err)
}
