package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Erasure translation
	TransInfo                 Code = 3400
	TransNameClashSameErasure Code = 3401
	TransNameClashNoOverride  Code = 3402
	TransCastNotAccessible    Code = 3403

	// Ввод-вывод
	IOInfo            Code = 4000
	IOLoadUnitError   Code = 4001
	IOWriteUnitError  Code = 4002
	IOSchemaMismatch  Code = 4003
	IOUnitNotResolved Code = 4004

	// Конфигурация
	CfgInfo           Code = 5000
	CfgInvalidFile    Code = 5001
	CfgInvalidVersion Code = 5002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:               "Unknown error",
		TransInfo:                 "Erasure information",
		TransNameClashSameErasure: "Name clash: members have the same erasure",
		TransNameClashNoOverride:  "Name clash: same erasure, neither overrides the other",
		TransCastNotAccessible:    "Inserted cast names an inaccessible type",
		IOInfo:                    "I/O information",
		IOLoadUnitError:           "Failed to load unit",
		IOWriteUnitError:          "Failed to write unit",
		IOSchemaMismatch:          "Unit schema version mismatch",
		IOUnitNotResolved:         "Unit references an unknown symbol",
		CfgInfo:                   "Configuration information",
		CfgInvalidFile:            "Invalid configuration file",
		CfgInvalidVersion:         "Invalid target version",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
