package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidTable(t *testing.T) {
	tbl := NewTable()
	tbl.SetFunction("wp_trim_words", FunctionEntry{Namespace: "Minnow/Formatting", Class: "Words", Method: "trim"})
	tbl.SetFunction("wp_die", FunctionEntry{Namespace: "Minnow", Method: "die"})
	tbl.SetFunction("array_is_list", FunctionEntry{Polyfill: true})
	tbl.Classes["WP_Widget"] = ClassEntry{Namespace: `Minnow\Widgets`, Class: "Widget"}

	res := Validate(tbl)
	assert.True(t, res.IsValid(), "unexpected errors: %v", res.Error())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	tbl := NewTable()
	tbl.SetFunction("no_namespace", FunctionEntry{Class: "Misc", Method: "x"})
	tbl.SetFunction("no_method", FunctionEntry{Namespace: "Minnow", Class: "Misc"})
	tbl.SetFunction("bad_class", FunctionEntry{Namespace: "Minnow", Class: "Not-Valid", Method: "x"})
	tbl.SetFunction("deep_global", FunctionEntry{Namespace: "Minnow/Deep", Method: "x"})
	tbl.Classes["WP_Bad"] = ClassEntry{Namespace: "Minnow/9lives", Class: "Bad"}
	tbl.Classes["WP_Empty"] = ClassEntry{Namespace: "Minnow"}

	res := Validate(tbl)
	require.False(t, res.IsValid())

	codes := map[string]int{}
	for _, d := range res.Errors {
		codes[d.Code]++
	}

	assert.Equal(t, 2, codes["invalid_namespace"])
	assert.Equal(t, 1, codes["invalid_method"])
	assert.Equal(t, 2, codes["invalid_class"])
	assert.Equal(t, 1, codes["invalid_global_class"])
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "table_is_nil", res.Errors[0].Code)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("WP_Widget"))
	assert.True(t, IsIdentifier("_private"))
	assert.True(t, IsIdentifier("Ünicode"))
	assert.False(t, IsIdentifier("9lives"))
	assert.False(t, IsIdentifier("has space"))
	assert.False(t, IsIdentifier(""))
}
