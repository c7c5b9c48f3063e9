package personal

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed builtin.json
var builtinJSON []byte

var (
	builtinOnce  sync.Once
	builtinTable *Table
)

// Builtin returns the embedded reference table. It only covers a handful of
// species; load a full table with LoadJSON for real use.
func Builtin() *Table {
	builtinOnce.Do(func() {
		t, err := LoadJSON(bytes.NewReader(builtinJSON))
		if err != nil {
			panic("personal: embedded table: " + err.Error())
		}
		builtinTable = t
	})
	return builtinTable
}
