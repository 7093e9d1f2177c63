package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006

	// Разбор объявления
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynUnmatchedDelimiter Code = 2003
	SynEmptyInput         Code = 2010
	SynUnsupportedItem    Code = 2011
	SynMultipleItems      Code = 2012
	SynExpectIdentifier   Code = 2013
	SynBadGenericParam    Code = 2014
	SynBadAttribute       Code = 2015
	SynUnionWithoutFields Code = 2016
	SynBadVisibility      Code = 2017

	// Шаблон и helper-атрибут
	TplInfo               Code = 3000
	TplUnknownPlaceholder Code = 3001
	TplUnbalancedBrace    Code = 3002
	TplUnknownHelperKey   Code = 3003
	TplNonStringValue     Code = 3004
	TplDuplicateOption    Code = 3005
	TplMalformedHelper    Code = 3006
	TplInternal           Code = 3007

	// I/O
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
	IOConfigError   Code = 4003

	// Раскрытие
	ExpInfo          Code = 5000
	ExpPanic         Code = 5001
	ExpSiteDisabled  Code = 5002
	ExpNoDeriveSites Code = 5003

	// cfg-предикаты
	CfgInfo             Code = 6000
	CfgMalformed        Code = 6001
	CfgUnknownPredicate Code = 6002

	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexTokenTooLong:             "Token too long",
		LexUnterminatedChar:         "Unterminated character literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynUnmatchedDelimiter:       "Unmatched closing delimiter",
		SynEmptyInput:               "Empty derive input",
		SynUnsupportedItem:          "Unsupported item kind",
		SynMultipleItems:            "More than one item in derive input",
		SynExpectIdentifier:         "Expected identifier",
		SynBadGenericParam:          "Malformed generic parameter",
		SynBadAttribute:             "Malformed attribute",
		SynUnionWithoutFields:       "Union requires named fields",
		SynBadVisibility:            "Malformed visibility",
		TplInfo:                     "Template information",
		TplUnknownPlaceholder:       "Unknown template placeholder",
		TplUnbalancedBrace:          "Unbalanced brace in template",
		TplUnknownHelperKey:         "Unknown helper attribute key",
		TplNonStringValue:           "Helper attribute value must be a string",
		TplDuplicateOption:          "Duplicate helper attribute option",
		TplMalformedHelper:          "Malformed helper attribute",
		TplInternal:                 "Generated code is not valid",
		IOInfo:                      "I/O information",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Expansion cache error",
		IOConfigError:               "Configuration file error",
		ExpInfo:                     "Expansion information",
		ExpPanic:                    "Expansion aborted",
		ExpSiteDisabled:             "Derive site disabled by cfg",
		ExpNoDeriveSites:            "No derive sites found",
		CfgInfo:                     "cfg information",
		CfgMalformed:                "Malformed cfg predicate",
		CfgUnknownPredicate:         "Unknown cfg predicate",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TPL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
