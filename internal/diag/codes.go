package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// General
	URITooLong              Code = 1001
	URIBadSyntax            Code = 1002
	FieldNameBadSyntax      Code = 1003
	HeaderBlockTooLarge     Code = 1004
	HeaderTooLarge          Code = 1005
	SingleHeaderRepeat      Code = 1006
	BadSyntax               Code = 1007
	BodyExtra               Code = 1008
	CMD5Correct             Code = 1009
	CMD5Incorrect           Code = 1010
	ConnegGzip              Code = 1011
	ConnegNoGzip            Code = 1012
	ConnegGzipWithoutAsking Code = 1013
	BadDateSyntax           Code = 1014
	DateCorrect             Code = 1015
	MIMEVersion             Code = 1016
	PragmaOther             Code = 1017
	ETagDoesntChange        Code = 1018
	ViaPresent              Code = 1019

	// Caching
	AgeNotInt         Code = 2001
	AgeNegative       Code = 2002
	AgePresent        Code = 2003
	DateIncorrect     Code = 2004
	INM304            Code = 2005
	INMFull           Code = 2006
	INMUnknown        Code = 2007
	INMStatus         Code = 2008
	LMFuture          Code = 2009
	LMPresent         Code = 2010
	IMS304            Code = 2011
	IMSFull           Code = 2012
	IMSUnknown        Code = 2013
	IMSStatus         Code = 2014
	PragmaNoCache     Code = 2015
	VaryAsterisk      Code = 2016
	VaryUserAgent     Code = 2017
	VaryInconsistent  Code = 2018
	CurrentAge        Code = 2019
	FreshnessLifetime Code = 2020

	// Connection
	CLCorrect   Code = 3001
	CLIncorrect Code = 3002

	// Tests
	RangeCorrect   Code = 4001
	RangeIncorrect Code = 4002
	RangeFull      Code = 4003
	RangeStatus    Code = 4004
)

var (
	codeName = map[Code]string{
		UnknownCode:             "UNKNOWN",
		URITooLong:              "URI_TOO_LONG",
		URIBadSyntax:            "URI_BAD_SYNTAX",
		FieldNameBadSyntax:      "FIELD_NAME_BAD_SYNTAX",
		HeaderBlockTooLarge:     "HEADER_BLOCK_TOO_LARGE",
		HeaderTooLarge:          "HEADER_TOO_LARGE",
		SingleHeaderRepeat:      "SINGLE_HEADER_REPEAT",
		BadSyntax:               "BAD_SYNTAX",
		BodyExtra:               "BODY_EXTRA",
		CMD5Correct:             "CMD5_CORRECT",
		CMD5Incorrect:           "CMD5_INCORRECT",
		ConnegGzip:              "CONNEG_GZIP",
		ConnegNoGzip:            "CONNEG_NO_GZIP",
		ConnegGzipWithoutAsking: "CONNEG_GZIP_WITHOUT_ASKING",
		BadDateSyntax:           "BAD_DATE_SYNTAX",
		DateCorrect:             "DATE_CORRECT",
		MIMEVersion:             "MIME_VERSION",
		PragmaOther:             "PRAGMA_OTHER",
		ETagDoesntChange:        "ETAG_DOESNT_CHANGE",
		ViaPresent:              "VIA_PRESENT",
		AgeNotInt:               "AGE_NOT_INT",
		AgeNegative:             "AGE_NEGATIVE",
		AgePresent:              "AGE_PRESENT",
		DateIncorrect:           "DATE_INCORRECT",
		INM304:                  "INM_304",
		INMFull:                 "INM_FULL",
		INMUnknown:              "INM_UNKNOWN",
		INMStatus:               "INM_STATUS",
		LMFuture:                "LM_FUTURE",
		LMPresent:               "LM_PRESENT",
		IMS304:                  "IMS_304",
		IMSFull:                 "IMS_FULL",
		IMSUnknown:              "IMS_UNKNOWN",
		IMSStatus:               "IMS_STATUS",
		PragmaNoCache:           "PRAGMA_NO_CACHE",
		VaryAsterisk:            "VARY_ASTERISK",
		VaryUserAgent:           "VARY_USER_AGENT",
		VaryInconsistent:        "VARY_INCONSISTENT",
		CurrentAge:              "CURRENT_AGE",
		FreshnessLifetime:       "FRESHNESS_LIFETIME",
		CLCorrect:               "CL_CORRECT",
		CLIncorrect:             "CL_INCORRECT",
		RangeCorrect:            "RANGE_CORRECT",
		RangeIncorrect:          "RANGE_INCORRECT",
		RangeFull:               "RANGE_FULL",
		RangeStatus:             "RANGE_STATUS",
	}

	codeByName = func() map[string]Code {
		out := make(map[string]Code, len(codeName))
		for c, name := range codeName {
			if c == UnknownCode {
				continue
			}
			out[name] = c
		}
		return out
	}()
)

// CodeByName resolves a symbolic name such as "URI_TOO_LONG".
func CodeByName(name string) (Code, bool) {
	c, ok := codeByName[name]
	return c, ok
}

// ID returns the compact identifier, e.g. GEN1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CAC%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CON%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TST%04d", ic)
	}
	return "N0000"
}

// RangeCategory is the category implied by the numeric range of the code.
func (c Code) RangeCategory() Category {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return CatGeneral
	case ic >= 2000 && ic < 3000:
		return CatCaching
	case ic >= 3000 && ic < 4000:
		return CatConnection
	case ic >= 4000 && ic < 5000:
		return CatTests
	}
	return 0
}

// Name returns the symbolic name, e.g. URI_TOO_LONG.
func (c Code) Name() string {
	name, ok := codeName[c]
	if !ok {
		return codeName[UnknownCode]
	}
	return name
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Name())
}
