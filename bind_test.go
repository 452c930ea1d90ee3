package argbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type level uint

func Test_Var(t *testing.T) {
	var s string
	var m mode
	var b bool
	var i int
	var l level

	Var(&s)("x")
	Var(&m)("fast")
	Var(&b)(true)
	Var(&i)(-3)
	Var(&l)(uint(7))

	assert.Equal(t, "x", s)
	assert.Equal(t, mode("fast"), m)
	assert.True(t, b)
	assert.Equal(t, -3, i)
	assert.Equal(t, level(7), l)
}

func Test_SliceVar(t *testing.T) {
	ms := []mode{"old"}
	SliceVar(&ms)([]any{"a", "b"})
	assert.Equal(t, []mode{"a", "b"}, ms)

	is := []int{1}
	SliceVar(&is)([]any{})
	assert.NotNil(t, is)
	assert.Empty(t, is)
}

func Test_setField(t *testing.T) {
	s := struct {
		M  mode
		LS []level
	}{}

	v, _ := unwrap(&s)

	setField(v, 0)("slow")
	setField(v, 1)([]any{uint(1), uint(2)})

	assert.Equal(t, mode("slow"), s.M)
	assert.Equal(t, []level{1, 2}, s.LS)
}
