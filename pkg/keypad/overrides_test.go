package keypad

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDecodeOverrides(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{
			name: "json",
			file: "overrides.json",
			data: `{"fr_FR": {"group_separator": " ", "decimal_digits": 3, "rounding_mode": "ToEven"}}`,
		},
		{
			name: "yaml",
			file: "overrides.yaml",
			data: "fr_FR:\n  group_separator: \" \"\n  decimal_digits: 3\n  rounding_mode: ToEven\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides, err := DecodeOverrides(tt.file, []byte(tt.data))
			require.NoError(t, err)

			override, ok := overrides.lookup(language.MustParse("fr-FR"))
			require.True(t, ok)
			assert.Equal(t, " ", override.GroupSeparator)
			require.NotNil(t, override.DecimalDigits)
			assert.Equal(t, 3, *override.DecimalDigits)
			assert.Equal(t, "ToEven", override.RoundingMode)
		})
	}
}

func TestDecodeOverrides_Errors(t *testing.T) {
	_, err := DecodeOverrides("overrides.ini", []byte("x=1"))
	assert.ErrorIs(t, err, ErrUnsupportedOverrides)

	_, err = DecodeOverrides("overrides.json", []byte("{"))
	assert.Error(t, err)

	_, err = DecodeOverrides("overrides.yml", []byte(`"": {}`))
	assert.Error(t, err)
}

func TestOverridesLookup(t *testing.T) {
	overrides := Overrides{
		"pt":    {DecimalSeparator: ","},
		"pt-PT": {GroupSeparator: " "},
	}

	override, ok := overrides.lookup(language.MustParse("pt-PT"))
	require.True(t, ok)
	assert.Equal(t, " ", override.GroupSeparator)

	override, ok = overrides.lookup(language.MustParse("pt-BR"))
	require.True(t, ok)
	assert.Equal(t, ",", override.DecimalSeparator)

	_, ok = overrides.lookup(language.Japanese)
	assert.False(t, ok)

	_, ok = Overrides(nil).lookup(language.German)
	assert.False(t, ok)
}

func TestProfileOverrideApply(t *testing.T) {
	p := usProfile()

	ProfileOverride{
		NativeDigits:         []string{"٠", "١", "٢", "٣", "٤", "٥", "٦", "٧", "٨", "٩"},
		PercentDecimalDigits: intPtr(0),
		RoundingMode:         "bogus",
	}.apply(&p)

	assert.Equal(t, "٣", p.NativeDigits[3])
	assert.Equal(t, 0, p.DefaultPercentDecimalDigits)
	assert.Equal(t, RoundAwayFromZero, p.RoundingMode)

	ProfileOverride{NativeDigits: []string{"0", "1"}}.apply(&p)
	assert.Equal(t, "٣", p.NativeDigits[3])

	ProfileOverride{NativeDigits: []string{"0", "1", "2", "33", "4", "5", "6", "7", "8", "9"}}.apply(&p)
	assert.Equal(t, "٣", p.NativeDigits[3])
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yml")
	require.NoError(t, os.WriteFile(path, []byte("de:\n  negative_sign: \"−\"\n"), 0644))

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)

	p := NewLocaleProfile(language.German, overrides)
	assert.Equal(t, "−", p.NegativeSign)

	_, err = LoadOverrides(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
