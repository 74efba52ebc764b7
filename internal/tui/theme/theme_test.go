package theme

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPalettesSetEveryRole(t *testing.T) {
	colorType := reflect.TypeOf(lipgloss.Color(""))
	for _, th := range All {
		v := reflect.ValueOf(th)
		for i := 0; i < v.NumField(); i++ {
			f := v.Type().Field(i)
			if f.Type != colorType {
				continue
			}
			if v.Field(i).String() == "" {
				t.Errorf("%s: %s is unset", th.Name, f.Name)
			}
		}
	}
}

func TestByNameAndValid(t *testing.T) {
	for _, name := range Names() {
		if !Valid(name) || ByName(name).Name != name {
			t.Errorf("theme %q not found", name)
		}
	}
	if Valid("solarized") {
		t.Error("unknown theme reported valid")
	}
	if got := ByName("solarized").Name; got != FlexokiDark.Name {
		t.Errorf("fallback = %q", got)
	}
}
