package analyze

// Source descriptions used when a diagnostic lists the symbols that
// contributed to a target. Examples:
//   - "function wp_trim_words()"
//   - "class WP_Widget"
//   - "class WP_Widget::render()"

// DescribeFunction describes a function symbol.
func DescribeFunction(name string) string {
	return KindFunction.String() + " " + name + "()"
}

// DescribeClass describes a class symbol.
func DescribeClass(name string) string {
	return KindClass.String() + " " + name
}

// DescribeClassMethod describes a method declared by an original class.
func DescribeClassMethod(class, method string) string {
	return DescribeClass(class) + "::" + method + "()"
}
