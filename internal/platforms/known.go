// Package platforms provides a table of well-known hardware packages, keyed by
// architecture, and helpers to infer a platform from an installation path.
// It is used when a descriptor is configured without an explicit package name.
package platforms

import (
	"path/filepath"
	"strings"

	"github.com/StinkyLord/boardcfg/internal/model"
)

// KnownPlatform describes a hardware package we can recognise.
type KnownPlatform struct {
	Architecture string   // Architecture id as used in board keys
	Package      string   // Package (vendor) name
	Aliases      []string // Other spellings of the architecture
	Description  string
}

// Known is the built-in platform table.
var Known = []KnownPlatform{
	{Architecture: "avr", Package: "arduino", Description: "Arduino AVR Boards"},
	{Architecture: "megaavr", Package: "arduino", Description: "Arduino megaAVR Boards"},
	{Architecture: "sam", Package: "arduino", Description: "Arduino SAM Boards (32-bits ARM Cortex-M3)"},
	{Architecture: "samd", Package: "arduino", Description: "Arduino SAMD Boards (32-bits ARM Cortex-M0+)"},
	{Architecture: "mbed_nano", Package: "arduino", Aliases: []string{"mbed"}, Description: "Arduino Mbed OS Nano Boards"},
	{Architecture: "renesas_uno", Package: "arduino", Description: "Arduino UNO R4 Boards"},
	{Architecture: "esp32", Package: "esp32", Description: "Espressif ESP32 Arduino core"},
	{Architecture: "esp8266", Package: "esp8266", Description: "ESP8266 Community core"},
	{Architecture: "stm32", Package: "STMicroelectronics", Aliases: []string{"stm32duino"}, Description: "STM32 MCU based boards"},
	{Architecture: "rp2040", Package: "rp2040", Description: "Raspberry Pi Pico/RP2040"},
	{Architecture: "nrf52", Package: "adafruit", Description: "Adafruit nRF52 Boards"},
}

// Match returns the known platform for an architecture (case-insensitive), or nil.
func Match(arch string) *KnownPlatform {
	arch = strings.ToLower(strings.TrimSpace(arch))
	for i := range Known {
		kp := &Known[i]
		if strings.ToLower(kp.Architecture) == arch {
			return kp
		}
		for _, a := range kp.Aliases {
			if strings.ToLower(a) == arch {
				return kp
			}
		}
	}
	return nil
}

// Resolve builds a platform from a possibly empty package name and an architecture,
// filling the package from the table when it is missing.
func Resolve(pkg, arch string) model.Platform {
	if pkg == "" {
		if kp := Match(arch); kp != nil {
			pkg = kp.Package
			arch = kp.Architecture
		}
	}
	return model.Platform{PackageName: pkg, Architecture: arch}
}

// FromPath infers package and architecture from a descriptor path laid out as
// either ".../packages/<pkg>/hardware/<arch>/<version>/boards.txt" or
// ".../hardware/<pkg>/<arch>/boards.txt". ok is false if neither layout matches.
func FromPath(path string) (plat model.Platform, ok bool) {
	segs := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] != "hardware" {
			continue
		}
		if i >= 2 && segs[i-2] == "packages" && i+1 < len(segs)-1 {
			return model.Platform{PackageName: segs[i-1], Architecture: segs[i+1]}, true
		}
		if i+2 < len(segs)-1 {
			return model.Platform{PackageName: segs[i+1], Architecture: segs[i+2]}, true
		}
	}
	return model.Platform{}, false
}
