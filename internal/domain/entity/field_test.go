package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUnmarshalJSON(t *testing.T) {
	type payload struct {
		Name Field[string] `json:"name"`
		Age  Field[int]    `json:"age"`
	}

	t.Run("absent keys stay unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Name.Present)
		assert.False(t, p.Age.Present)
	})

	t.Run("null marks the field cleared", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"age": null}`), &p))
		assert.True(t, p.Age.Present)
		assert.True(t, p.Age.Null)
		assert.Nil(t, p.Age.Ptr())
		assert.False(t, p.Name.Present)
	})

	t.Run("values are carried through", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": "Ada", "age": 36}`), &p))
		assert.True(t, p.Name.Present)
		assert.False(t, p.Name.Null)
		assert.Equal(t, "Ada", p.Name.Value)
		require.NotNil(t, p.Age.Ptr())
		assert.Equal(t, 36, *p.Age.Ptr())
	})

	t.Run("zero value is a valid provided value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"age": 0}`), &p))
		assert.True(t, p.Age.Present)
		assert.False(t, p.Age.Null)
		assert.Equal(t, 0, p.Age.Value)
	})

	t.Run("type mismatch fails", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"age": "not a number"}`), &p))
	})
}

func TestFieldConstructors(t *testing.T) {
	set := Set(7)
	assert.True(t, set.Present)
	assert.False(t, set.Null)
	assert.Equal(t, 7, set.Value)

	null := SetNull[int]()
	assert.True(t, null.Present)
	assert.True(t, null.Null)
	assert.Nil(t, null.Ptr())

	unset := Unset[int]()
	assert.False(t, unset.Present)
}

func TestUserUpdateIsEmpty(t *testing.T) {
	assert.True(t, UserUpdate{}.IsEmpty())
	assert.False(t, UserUpdate{Name: Set("x")}.IsEmpty())
	assert.False(t, UserUpdate{Age: SetNull[int]()}.IsEmpty())
}
