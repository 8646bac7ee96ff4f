package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	evdev "github.com/holoplot/go-evdev"
)

// maxKeyCode mirrors KEY_MAX from linux/input-event-codes.h.
const maxKeyCode = 0x2ff

var (
	inputMappingMu    sync.Mutex
	inputMappingBytes []byte
	inputMapping      *InputMapping
)

// SetInputMappingBytes installs a JSON mapping that extends the defaults.
// The next GetInputMapping call picks it up.
func SetInputMappingBytes(data []byte) {
	inputMappingMu.Lock()
	defer inputMappingMu.Unlock()
	inputMappingBytes = data
	inputMapping = nil
}

// InputMapping translates hardware key codes into key events.
type InputMapping struct {
	KeyboardMap map[evdev.EvCode]constants.KeyEvent
}

// Mapping is the serialized form: evdev key codes to key identifiers
// understood by constants.ParseKeyID.
type Mapping struct {
	KeyboardMap map[int]string `json:"keyboard_map"`
}

func DefaultInputMapping() *InputMapping {
	m := map[evdev.EvCode]constants.KeyEvent{
		evdev.KEY_BACKSPACE:  constants.Backspace(),
		evdev.KEY_ENTER:      constants.Return(),
		evdev.KEY_KPENTER:    constants.Return(),
		evdev.KEY_TAB:        constants.Return(),
		evdev.KEY_ESC:        constants.Hide(),
		evdev.KEY_LEFTSHIFT:  constants.Shift(),
		evdev.KEY_RIGHTSHIFT: constants.Shift(),
		evdev.KEY_MINUS:      constants.Minus(),
		evdev.KEY_KPMINUS:    constants.Minus(),
		evdev.KEY_DOT:        constants.DecimalPoint(),
		evdev.KEY_COMMA:      constants.DecimalPoint(),
		evdev.KEY_KPDOT:      constants.DecimalPoint(),
		evdev.KEY_KPCOMMA:    constants.DecimalPoint(),
	}

	digits := []evdev.EvCode{
		evdev.KEY_0, evdev.KEY_1, evdev.KEY_2, evdev.KEY_3, evdev.KEY_4,
		evdev.KEY_5, evdev.KEY_6, evdev.KEY_7, evdev.KEY_8, evdev.KEY_9,
	}
	keypadDigits := []evdev.EvCode{
		evdev.KEY_KP0, evdev.KEY_KP1, evdev.KEY_KP2, evdev.KEY_KP3, evdev.KEY_KP4,
		evdev.KEY_KP5, evdev.KEY_KP6, evdev.KEY_KP7, evdev.KEY_KP8, evdev.KEY_KP9,
	}
	for n := range digits {
		m[digits[n]] = constants.Digit(n)
		m[keypadDigits[n]] = constants.Digit(n)
	}

	letters := []evdev.EvCode{
		evdev.KEY_A, evdev.KEY_B, evdev.KEY_C, evdev.KEY_D, evdev.KEY_E, evdev.KEY_F,
		evdev.KEY_G, evdev.KEY_H, evdev.KEY_I, evdev.KEY_J, evdev.KEY_K, evdev.KEY_L,
		evdev.KEY_M, evdev.KEY_N, evdev.KEY_O, evdev.KEY_P, evdev.KEY_Q, evdev.KEY_R,
		evdev.KEY_S, evdev.KEY_T, evdev.KEY_U, evdev.KEY_V, evdev.KEY_W, evdev.KEY_X,
		evdev.KEY_Y, evdev.KEY_Z,
	}
	for i, code := range letters {
		m[code] = constants.Char(string(rune('A' + i)))
	}
	m[evdev.KEY_SPACE] = constants.Char(" ")

	return &InputMapping{KeyboardMap: m}
}

// GetInputMapping returns the defaults extended by the embedded bytes if set,
// else by the file named in the environment, else the plain defaults.
func GetInputMapping() *InputMapping {
	inputMappingMu.Lock()
	defer inputMappingMu.Unlock()

	if inputMapping != nil {
		return inputMapping
	}

	logger := GetInternalLogger()
	mapping := DefaultInputMapping()

	if len(inputMappingBytes) > 0 {
		err := mapping.merge(inputMappingBytes)
		if err == nil {
			logger.Info("Loaded custom input mapping from embedded bytes")
			inputMapping = mapping
			return inputMapping
		}
		logger.Warn("Failed to load custom input mapping from bytes, trying file path", "error", err)
		mapping = DefaultInputMapping()
	}

	if mappingPath := os.Getenv(constants.MappingPathEnvVar); mappingPath != "" {
		custom, err := LoadInputMappingFromJSON(mappingPath)
		if err == nil {
			logger.Info("Loaded custom input mapping from environment variable", "path", mappingPath)
			inputMapping = custom
			return inputMapping
		}
		logger.Warn("Failed to load custom input mapping, using default", "path", mappingPath, "error", err)
	}

	inputMapping = mapping
	return inputMapping
}

func LoadInputMappingFromJSON(filePath string) (*InputMapping, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	mapping := DefaultInputMapping()
	if err := mapping.merge(data); err != nil {
		return nil, err
	}
	return mapping, nil
}

func (im *InputMapping) merge(data []byte) error {
	var serializable Mapping
	if err := json.Unmarshal(data, &serializable); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	for code, id := range serializable.KeyboardMap {
		if code < 0 || code > maxKeyCode {
			return fmt.Errorf("key code %d out of range", code)
		}
		event, err := constants.ParseKeyID(id)
		if err != nil {
			return fmt.Errorf("key code %d: %w", code, err)
		}
		im.KeyboardMap[evdev.EvCode(code)] = event
	}
	return nil
}

// Lookup returns the key event for a raw key code.
func (im *InputMapping) Lookup(code uint16) (constants.KeyEvent, bool) {
	if im == nil {
		return constants.KeyEvent{}, false
	}
	event, ok := im.KeyboardMap[evdev.EvCode(code)]
	return event, ok
}

// ToJSON exports the mapping with codes as keys and key identifiers as values.
func (im *InputMapping) ToJSON() ([]byte, error) {
	serializable := Mapping{KeyboardMap: make(map[int]string, len(im.KeyboardMap))}
	for code, event := range im.KeyboardMap {
		serializable.KeyboardMap[int(code)] = event.String()
	}
	return json.MarshalIndent(serializable, "", "  ")
}
