// Package formats lists the code formats and devices a cheat listing can be
// written for, and picks the decoder for the ones this tool can read.
package formats

import (
	"fmt"
	"sort"
	"strings"

	"armax-decoder/internal/armax"
	"armax-decoder/internal/crypto"
)

// Format is a code encoding.
type Format uint8

const (
	FormatAR1 Format = iota
	FormatAR2
	FormatARMAX
	FormatCB  // includes user-provided BEEFC0DE encryptions
	FormatCB7 // common BEEFC0DE only
	FormatGS3
	FormatGS5
	FormatMAXRaw
	FormatRaw
)

var formatNames = [...]string{"AR1", "AR2", "ARMAX", "CB", "CB7", "GS3", "GS5", "MAXRaw", "Raw"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

// Device is the hardware family a code type targets.
type Device uint8

const (
	DeviceAR1 Device = iota
	DeviceAR2
	DeviceARMAX
	DeviceCB
	DeviceGS3
	DeviceStandard
)

var deviceNames = [...]string{"AR1", "AR2", "ARMAX", "CB", "GS3", "STD"}

func (d Device) String() string {
	if int(d) < len(deviceNames) {
		return deviceNames[d]
	}
	return fmt.Sprintf("Device(%d)", d)
}

// CodeType is a named format/device combination.
type CodeType struct {
	Key    string
	Name   string
	Format Format
	Device Device
}

var catalog = []CodeType{
	{"raw", "Raw/Unencrypted", FormatRaw, DeviceStandard},
	{"maxraw", "MAXRaw/Unencrypted", FormatMAXRaw, DeviceARMAX},
	{"raw-ar2", "Raw for Action Replay V1/V2", FormatRaw, DeviceAR2},
	{"raw-cb", "Raw for CodeBreaker", FormatRaw, DeviceCB},
	{"raw-gs2", "Raw for GameShark V1/V2", FormatRaw, DeviceAR2},
	{"raw-gs3", "Raw for Xploder/GameShark V3", FormatRaw, DeviceGS3},
	{"ar1", "Action Replay V1", FormatAR1, DeviceAR1},
	{"ar2", "Action Replay V2", FormatAR2, DeviceAR2},
	{"armax", "Action Replay MAX", FormatARMAX, DeviceARMAX},
	{"cb", "CodeBreaker V1+ (All)", FormatCB, DeviceCB},
	{"cb7", "CodeBreaker V7 Common", FormatCB7, DeviceCB},
	{"gs1", "Interact GameShark V1", FormatAR1, DeviceAR1},
	{"gs2", "Interact GameShark V2", FormatAR2, DeviceAR2},
	{"gs3", "MadCatz GameShark V3+", FormatGS3, DeviceGS3},
	{"gs5", "MadCatz GameShark V5+ (w/Verifier)", FormatGS5, DeviceGS3},
	{"xp1", "Xploder V1-V3", FormatCB, DeviceCB},
	{"xp4", "Xploder V4", FormatGS3, DeviceGS3},
	{"xp5", "Xploder V5", FormatGS5, DeviceGS3},
	{"swap", "Swap Magic Coder", FormatAR1, DeviceAR1},
}

// All returns every known code type in catalog order.
func All() []CodeType {
	return append([]CodeType(nil), catalog...)
}

// Lookup finds a code type by key or display name, ignoring case.
func Lookup(name string) (CodeType, error) {
	for _, ct := range catalog {
		if strings.EqualFold(ct.Key, name) || strings.EqualFold(ct.Name, name) {
			return ct, nil
		}
	}
	return CodeType{}, fmt.Errorf("formats: unknown code type %q (known: %s)", name, strings.Join(keys(), ", "))
}

func keys() []string {
	out := make([]string, len(catalog))
	for i, ct := range catalog {
		out[i] = ct.Key
	}
	sort.Strings(out)
	return out
}

// Supported returns the code types that can be decoded.
func Supported() []CodeType {
	var out []CodeType
	for _, ct := range catalog {
		if ct.Format.Decodable() {
			out = append(out, ct)
		}
	}
	return out
}

// Decodable reports whether a Decoder exists for f.
func (f Format) Decodable() bool {
	switch f {
	case FormatARMAX, FormatAR2, FormatRaw:
		return true
	}
	return false
}

// ARMAXText reports whether listings in f use the 13-symbol ARMAX text form
// rather than hex octet pairs.
func (f Format) ARMAXText() bool {
	return f == FormatARMAX
}

// Decoder turns the parsed words of one cheat into decrypted codes.
type Decoder func(codes []uint32) (armax.Decrypted, error)

// Decoder returns the decoding pipeline for f. A nil sched uses the default
// ARMAX schedule; ar2 is copied into every call.
func (f Format) Decoder(sched *crypto.ARMAXSchedule, ar2 crypto.AR2Seeds) (Decoder, error) {
	switch f {
	case FormatARMAX:
		if sched == nil {
			sched = crypto.DefaultARMAXSchedule()
		}
		return func(codes []uint32) (armax.Decrypted, error) {
			return armax.DecryptCheat(codes, sched, ar2)
		}, nil
	case FormatAR2:
		return func(codes []uint32) (armax.Decrypted, error) {
			out, err := crypto.DecryptAR2Cheat(codes, ar2)
			if err != nil {
				return armax.Decrypted{}, err
			}
			return armax.Decrypted{Codes: out}, nil
		}, nil
	case FormatRaw:
		return func(codes []uint32) (armax.Decrypted, error) {
			if len(codes)%2 != 0 {
				return armax.Decrypted{}, fmt.Errorf("formats: raw: %d words: %w", len(codes), crypto.ErrMalformedInput)
			}
			return armax.Decrypted{Codes: append([]uint32(nil), codes...)}, nil
		}, nil
	}
	return nil, fmt.Errorf("formats: %s: %w", f, crypto.ErrUnsupportedMode)
}
