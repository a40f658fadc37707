package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Merge   bool
	Options bool
	Compare bool
	Parse   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Merge = boolEnv("TREEMERGE_DEBUG_MERGE")
	d.Options = boolEnv("TREEMERGE_DEBUG_OPTIONS")
	d.Compare = boolEnv("TREEMERGE_DEBUG_COMPARE")
	d.Parse = boolEnv("TREEMERGE_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Merge() bool {
	return d.Merge
}
func Options() bool {
	return d.Options
}
func Compare() bool {
	return d.Compare
}
func Parse() bool {
	return d.Parse
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
