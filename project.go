package cmakeext

// Define is a single -D<Key>=<Value> cache entry.
type Define struct {
	Key   string
	Value string
}

// Arg renders the define as a cmake command-line flag.
func (d Define) Arg() string {
	return "-D" + d.Key + "=" + d.Value
}

// BoolDefine returns a define with an ON/OFF value.
func BoolDefine(key string, on bool) Define {
	return Define{Key: key, Value: onOff(on)}
}

// Project describes the fixed, project-specific part of the configure flags.
type Project struct {
	// Name is used in log output.
	Name string

	// Defines are passed on every configure, in order.
	Defines []Define

	// DebugInfoOption, if set, is switched ON for debug builds and OFF otherwise.
	DebugInfoOption string
}

// STK is the project profile for the STK native library and its Python wrapper.
var STK = Project{
	Name: "STK",
	Defines: []Define{
		BoolDefine("STK_BUILD_PYTHON_WRAPPER", true),
		BoolDefine("STK_BUILD_TESTS", false),
	},
	DebugInfoOption: "STK_BUILD_WITH_DEBUG_INFO",
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
