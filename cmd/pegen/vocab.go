package main

// vocabulary is the ast.TokenClassifier used by the CLI driver: any
// all-uppercase NameLeaf whose text matches one of these names is a
// token-kind reference rather than a rule reference, mirroring the
// fixedVocab helper the core packages' own tests build by hand.
type vocabulary map[string]bool

func (v vocabulary) IsTokenKind(name string) bool { return v[name] }

// defaultVocabulary covers package lex's fixed token kinds. A grammar
// that needs additional user token kinds can't add them through this
// CLI yet; cmd/pegen only drives the core's fixed vocabulary.
func defaultVocabulary() vocabulary {
	return vocabulary{
		"NAME": true, "NUMBER": true, "STRING": true,
		"NEWLINE": true, "OP": true, "ENDMARKER": true,
	}
}
