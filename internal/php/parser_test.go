package php

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transmuter/internal/analyze"
)

const widgetSource = `<?php
/**
 * Trims text to a certain number of words.
 */
function wp_trim_words( $text, $num_words = 55 ) {
	$query = new WP_Query();
	return WP_Formatting::trim( $text, $num_words );
}

class WP_Widget extends WP_Base_Widget {
	public function render( WP_Post $post ) {
		return self::PREFIX . static::class;
	}

	public function form() {}
}
`

func parse(t *testing.T, src string) Unit {
	t.Helper()

	p := NewParser()
	defer p.Close()

	return p.Parse(context.Background(), "test.php", []byte(src))
}

func TestParse_Declarations(t *testing.T) {
	unit := parse(t, widgetSource)
	require.NoError(t, unit.Err)

	require.Len(t, unit.Functions, 1)
	fn := unit.Functions[0]
	assert.Equal(t, "wp_trim_words", fn.Name)
	assert.Equal(t, "test.php", fn.Unit)
	assert.Empty(t, fn.Guard)
	require.NotNil(t, fn.Decl)

	require.Len(t, unit.Classes, 1)
	c := unit.Classes[0]
	assert.Equal(t, "WP_Widget", c.Name)
	assert.Equal(t, "WP_Base_Widget", c.Super)
	assert.Equal(t, []string{"render", "form"}, c.Members)
}

func TestParse_SyntaxError(t *testing.T) {
	unit := parse(t, "<?php\nfunction broken( {\n")

	require.Error(t, unit.Err)
	assert.Empty(t, unit.Functions)

	var pe *analyze.ParseError
	require.True(t, errors.As(unit.Err, &pe))
	assert.Equal(t, "test.php", pe.Path)
}

func TestParse_PolyfillGuard(t *testing.T) {
	unit := parse(t, `<?php
if ( ! function_exists( 'array_is_list' ) ) {
	function array_is_list( $arr ) {
		return true;
	}
}

function outside() {}
`)
	require.NoError(t, unit.Err)

	require.Len(t, unit.Guards, 1)
	assert.Equal(t, "array_is_list", unit.Guards[0].Name)
	assert.Contains(t, unit.Guards[0].Text, "function array_is_list( $arr )")

	require.Len(t, unit.Functions, 2)
	assert.Equal(t, "array_is_list", unit.Functions[0].Guard)
	assert.Equal(t, "outside", unit.Functions[1].Name)
	assert.Empty(t, unit.Functions[1].Guard)
}

func TestParse_NamespacedFileIsIgnored(t *testing.T) {
	unit := parse(t, "<?php\nfunction before() {}\nnamespace Vendor;\nfunction after() {}\n")
	require.NoError(t, unit.Err)

	require.Len(t, unit.Functions, 1)
	assert.Equal(t, "before", unit.Functions[0].Name)
}

func TestParse_NestedFunctionsStayInBody(t *testing.T) {
	unit := parse(t, "<?php\nfunction outer() {\n\tfunction inner() {}\n}\n")
	require.NoError(t, unit.Err)

	require.Len(t, unit.Functions, 1)
	assert.Equal(t, "outer", unit.Functions[0].Name)
}
