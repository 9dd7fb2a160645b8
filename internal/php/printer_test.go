package php

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Method(t *testing.T) {
	unit := parse(t, widgetSource)
	require.NoError(t, unit.Err)
	require.Len(t, unit.Functions, 1)

	out, err := NewPrinter().Method("wp_trim_words", unit.Functions[0].Decl)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "    /**\n     * Trims text"), out)
	assert.Contains(t, out, "    public static function wp_trim_words( $text, $num_words = 55 ) {")
	assert.Contains(t, out, `$query = new \WP_Query();`)
	assert.Contains(t, out, `return \WP_Formatting::trim( $text, $num_words );`)
	assert.True(t, strings.HasSuffix(out, "\n    }"), out)
}

func TestPrinter_MethodRename(t *testing.T) {
	unit := parse(t, "<?php\nfunction &wp_ref( WP_Post $post ) {\n\treturn $post;\n}\n")
	require.NoError(t, unit.Err)
	require.Len(t, unit.Functions, 1)

	out, err := NewPrinter().Method("ref", unit.Functions[0].Decl)
	require.NoError(t, err)

	assert.Contains(t, out, `public static function &ref( \WP_Post $post ) {`)
	assert.NotContains(t, out, "wp_ref")
}

func TestPrinter_MethodDedentsGuardedFunction(t *testing.T) {
	unit := parse(t, "<?php\nif ( true ) {\n\tfunction nested() {\n\t\treturn 1;\n\t}\n}\n")
	require.NoError(t, unit.Err)
	require.Len(t, unit.Functions, 1)

	out, err := NewPrinter().Method("nested", unit.Functions[0].Decl)
	require.NoError(t, err)

	assert.Equal(t, "    public static function nested() {\n    \treturn 1;\n    }", out)
}

func TestPrinter_MethodKeepsMultilineStrings(t *testing.T) {
	unit := parse(t, "<?php\nfunction msg() {\n\t$s = \"first\nsecond\";\n\treturn $s;\n}\n")
	require.NoError(t, unit.Err)
	require.Len(t, unit.Functions, 1)

	out, err := NewPrinter().Method("msg", unit.Functions[0].Decl)
	require.NoError(t, err)

	assert.Contains(t, out, "\"first\nsecond\";")
}

func TestPrinter_Class(t *testing.T) {
	unit := parse(t, widgetSource)
	require.NoError(t, unit.Err)
	require.Len(t, unit.Classes, 1)

	d := unit.Classes[0].Decl
	p := NewPrinter()

	out, err := p.Class("Widget", `\Minnow\Widgets\BaseWidget`, d)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `class Widget extends \Minnow\Widgets\BaseWidget {`), out)
	assert.Contains(t, out, `public function render( \WP_Post $post ) {`)
	assert.Contains(t, out, "return self::PREFIX . static::class;")

	// Unmapped superclass keeps its global name
	out, err = p.Class("Widget", "", d)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `class Widget extends \WP_Base_Widget {`), out)
}

func TestPrinter_KindMismatch(t *testing.T) {
	unit := parse(t, widgetSource)
	require.NoError(t, unit.Err)

	p := NewPrinter()

	_, err := p.Method("x", unit.Classes[0].Decl)
	require.Error(t, err)

	_, err = p.Class("X", "", unit.Functions[0].Decl)
	require.Error(t, err)

	_, err = p.Method("x", nil)
	require.Error(t, err)
}

func TestPrinter_UseAliasExpanded(t *testing.T) {
	unit := parse(t, "<?php\nuse Vendor\\Http\\Client as HttpClient;\nfunction fetch() {\n\treturn new HttpClient();\n}\n")
	require.NoError(t, unit.Err)
	require.Len(t, unit.Functions, 1)

	out, err := NewPrinter().Method("fetch", unit.Functions[0].Decl)
	require.NoError(t, err)

	assert.Contains(t, out, `return new \Vendor\Http\Client();`)
}
