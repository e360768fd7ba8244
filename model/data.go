package model

// Default returns the LanguageModel bundling EN/DE/ES pattern tables for
// the structural axes, labelling values, connectors, and named entities
// that the rest of the pipeline recognises: plain, embedded data rather
// than rows read from a database at call time (§6.1).
func Default() (*LanguageModel, error) {
	return NewLanguageModel(defaultAxes(), defaultValues(), defaultConnectors(), defaultNamedEntities())
}

func defaultAxes() []AxisSeed {
	return []AxisSeed{
		{
			Tag: "TRT", Level: 1, Role: RoleDocument, Description: "Treaty",
			Patterns: map[string]string{
				"EN": `Treaty`,
				"DE": `Vertrag`,
				"ES": `Tratado`,
			},
			Standard: map[string]string{"EN": "Treaty", "DE": "Vertrag", "ES": "Tratado"},
		},
		{
			Tag: "REG", Level: 1, Role: RoleDocument, Description: "Regulation",
			Patterns: map[string]string{
				"EN": `Regulation`,
				"DE": `Verordnung`,
				"ES": `Reglamento`,
			},
			Standard: map[string]string{"EN": "Regulation", "DE": "Verordnung", "ES": "Reglamento"},
		},
		{
			Tag: "DIR", Level: 1, Role: RoleDocument, Description: "Directive",
			Patterns: map[string]string{
				"EN": `Directive`,
				"DE": `Richtlinie`,
				"ES": `Directiva`,
			},
			Standard: map[string]string{"EN": "Directive", "DE": "Richtlinie", "ES": "Directiva"},
		},
		{
			Tag: "DEC", Level: 1, Role: RoleDocument, Description: "Decision",
			Patterns: map[string]string{
				"EN": `Decision`,
				"DE": `Beschluss`,
				"ES": `Decisión`,
			},
			Standard: map[string]string{"EN": "Decision", "DE": "Beschluss", "ES": "Decisión"},
		},
		{
			Tag: "FDC", Level: 1, Role: RoleDocument, Description: "Framework Decision",
			Patterns: map[string]string{
				"EN": `Framework Decision`,
				"DE": `Rahmenbeschluss`,
				"ES": `Decisión Marco`,
			},
			Standard: map[string]string{"EN": "Framework Decision", "DE": "Rahmenbeschluss", "ES": "Decisión Marco"},
		},
		{
			Tag: "ANX", Level: 2, Role: RoleAnnex, Description: "Annex",
			Patterns: map[string]string{
				"EN": `Annex(?:es)?`,
				"DE": `Anh[aä]ng(?:e|en)?`,
				"ES": `Anexos?`,
			},
			Standard: map[string]string{"EN": "Annex", "DE": "Anhang", "ES": "Anexo"},
		},
		{
			Tag: "PRT", Level: 2, Role: RoleContainer, Description: "Part",
			Patterns: map[string]string{
				"EN": `Parts?`,
				"DE": `Teile?`,
				"ES": `Partes?`,
			},
			Standard: map[string]string{"EN": "Part", "DE": "Teil", "ES": "Parte"},
		},
		{
			Tag: "TIT", Level: 3, Role: RoleContainer, Description: "Title",
			Patterns: map[string]string{
				"EN": `Titles?`,
				"DE": `Titeln?`,
				"ES": `T[ií]tulos?`,
			},
			Standard: map[string]string{"EN": "Title", "DE": "Titel", "ES": "Título"},
		},
		{
			Tag: "CHP", Level: 4, Role: RoleContainer, Description: "Chapter",
			Patterns: map[string]string{
				"EN": `Chapters?`,
				"DE": `Kapiteln?`,
				"ES": `Cap[ií]tulos?`,
			},
			Standard: map[string]string{"EN": "Chapter", "DE": "Kapitel", "ES": "Capítulo"},
		},
		{
			Tag: "SCT", Level: 5, Role: RoleContainer, Description: "Section",
			Patterns: map[string]string{
				"EN": `Sections?`,
				"DE": `Abschnitte?n?`,
				"ES": `Secciones?`,
			},
			Standard: map[string]string{"EN": "Section", "DE": "Abschnitt", "ES": "Sección"},
		},
		{
			Tag: "ART", Level: 6, Role: RoleLeaf, Description: "Article",
			Patterns: map[string]string{
				"EN": `Articles?|Art\.`,
				"DE": `Artikeln?|Art\.`,
				"ES": `Art[ií]culos?`,
			},
			Standard: map[string]string{"EN": "Art.", "DE": "Art.", "ES": "Art."},
		},
		{
			Tag: "PAR", Level: 7, Role: RoleParagraph, Description: "Paragraph",
			Patterns: map[string]string{
				"EN": `paragraphs?|para\.`,
				"DE": `Abs[aä]tz(?:e|en)?|Abs\.`,
				"ES": `apartados?`,
			},
			Standard: map[string]string{"EN": "para.", "DE": "Abs.", "ES": "apdo."},
		},
		{
			Tag: "PT", Level: 8, Role: RoleParagraph, Description: "Point",
			Patterns: map[string]string{
				"EN": `points?`,
				"DE": `Buchstaben?`,
				"ES": `letras?`,
			},
			Standard: map[string]string{"EN": "point", "DE": "Buchstabe", "ES": "letra"},
		},
		{
			Tag: "SPT", Level: 9, Role: RoleParagraph, Description: "Subpoint",
			Patterns: map[string]string{
				"EN": `subpoints?`,
				"DE": `Ziffern?`,
				"ES": `incisos?`,
			},
			Standard: map[string]string{"EN": "subpoint", "DE": "Ziffer", "ES": "inciso"},
		},
		{
			// Marks "the aforementioned X" (e.g. "that Article", "besagter Artikel").
			Tag: "XPREVX", Level: 1, Role: RolePhrase, Description: "back-reference marker",
			Patterns: map[string]string{
				"EN": `(?:that|the aforementioned|the said)`,
				"DE": `(?:besagt\w*|genannt\w*)`,
				"ES": `(?:dich\w*|citad\w*)`,
			},
		},
	}
}

func defaultValues() []ValueSeed {
	return []ValueSeed{
		{
			ValueRow: ValueRow{Tag: "AL", Order: 1, Decorable: true, Convert: true, Description: "Arabic numeral"},
			Patterns: []ValuePatternSeed{{Lang: "XX", Pattern: `\d+`}},
		},
		{
			ValueRow: ValueRow{Tag: "ROM", Order: 2, Decorable: true, Caseable: true, Convert: true, Description: "Roman numeral"},
			Patterns: []ValuePatternSeed{{Lang: "XX", Pattern: `[IVXLCDM]+`}},
		},
		{
			ValueRow: ValueRow{Tag: "AMBRA", Order: 3, Decorable: true, Caseable: true, Description: "Arabic-or-Roman ambiguous single letter"},
			Patterns: []ValuePatternSeed{{Lang: "XX", Pattern: `[IVX]`}},
		},
		{
			ValueRow: ValueRow{Tag: "LTR", Order: 4, Decorable: true, Caseable: true, Description: "lower-case point letter"},
			Patterns: []ValuePatternSeed{{Lang: "XX", Pattern: `[a-z]`}},
		},
		{
			ValueRow: ValueRow{Tag: "NM", Order: 5, Description: "plain number, e.g. a date component"},
			Patterns: []ValuePatternSeed{{Lang: "XX", Pattern: `\d{1,4}`}},
		},
		{
			ValueRow: ValueRow{Tag: "SRNK", Order: 6, Convert: true, Description: "spoken rank"},
			Patterns: []ValuePatternSeed{
				{Lang: "EN", Pattern: `first`, AsNumber: "1"},
				{Lang: "EN", Pattern: `second`, AsNumber: "2"},
				{Lang: "EN", Pattern: `third`, AsNumber: "3"},
				{Lang: "EN", Pattern: `fourth`, AsNumber: "4"},
				{Lang: "EN", Pattern: `fifth`, AsNumber: "5"},
				{Lang: "DE", Pattern: `erste[rsn]?`, AsNumber: "1"},
				{Lang: "DE", Pattern: `zweite[rsn]?`, AsNumber: "2"},
				{Lang: "DE", Pattern: `dritte[rsn]?`, AsNumber: "3"},
				{Lang: "DE", Pattern: `vierte[rsn]?`, AsNumber: "4"},
				{Lang: "DE", Pattern: `f[üu]nfte[rsn]?`, AsNumber: "5"},
				{Lang: "ES", Pattern: `primer[oa]?`, AsNumber: "1"},
				{Lang: "ES", Pattern: `segund[oa]`, AsNumber: "2"},
				{Lang: "ES", Pattern: `tercer[oa]?`, AsNumber: "3"},
				{Lang: "ES", Pattern: `cuart[oa]`, AsNumber: "4"},
				{Lang: "ES", Pattern: `quint[oa]`, AsNumber: "5"},
			},
		},
		{
			ValueRow: ValueRow{Tag: "LATIN", Order: 7, Convert: true, Description: "spoken Latin ordinal suffix"},
			Patterns: []ValuePatternSeed{
				{Lang: "XX", Pattern: `bis`, AsNumber: "bis"},
				{Lang: "XX", Pattern: `ter`, AsNumber: "ter"},
				{Lang: "XX", Pattern: `quater`, AsNumber: "quater"},
				{Lang: "XX", Pattern: `quinquies`, AsNumber: "quinquies"},
			},
		},
		{
			ValueRow: ValueRow{Tag: "SPN", Order: 8, Convert: true, Description: "spoken large number"},
			Patterns: []ValuePatternSeed{
				{Lang: "EN", Pattern: `hundred`, AsNumber: "100"},
				{Lang: "DE", Pattern: `hundert`, AsNumber: "100"},
				{Lang: "ES", Pattern: `cien(?:to)?`, AsNumber: "100"},
			},
		},
		{
			ValueRow: ValueRow{Tag: "XTHISX", Order: 9, Description: "self-reference sentinel"},
			Patterns: []ValuePatternSeed{
				{Lang: "EN", Pattern: `this`},
				{Lang: "DE", Pattern: `diese[mr]?`},
				{Lang: "ES", Pattern: `est[ae]`},
			},
		},
		{
			ValueRow: ValueRow{Tag: "EUFCOO", Order: 10, Description: "Framework Decision ordinate disguised as a Decision"},
			Patterns: []ValuePatternSeed{{Lang: "XX", Pattern: `\d{4}/\d+/JHA`}},
		},
	}
}

func defaultConnectors() []ConnectorSeed {
	return []ConnectorSeed{
		{Tag: "AND", AddStopper: true, Patterns: map[string]string{"EN": `and`, "DE": `und`, "ES": `y`}},
		{Tag: "OR", AddStopper: true, Patterns: map[string]string{"EN": `or`, "DE": `oder`, "ES": `o`}},
		{Tag: "COM", Patterns: map[string]string{"XX": `,`}},
		{Tag: "RC", AddStopper: true, Patterns: map[string]string{"EN": `to`, "DE": `bis`, "ES": `a`}},
		{Tag: "LF", AddStopper: true, Patterns: map[string]string{
			"EN": `as well as`, "DE": `sowie`, "ES": `así como`}},
		{Tag: "OTHERX", AddStopper: true, Patterns: map[string]string{
			"EN": `including`, "DE": `einschlie[ßs]lich`, "ES": `incluid[oa]`}},
		{Tag: "THEREOF", AddStopper: true, Patterns: map[string]string{
			"EN": `thereof`, "DE": `davon`, "ES": `del mismo`}},
		{Tag: "BRCRPL", AddStopper: true, Patterns: map[string]string{
			"EN": `in (?:its|their) place`, "DE": `an (?:seiner|ihrer) Stelle`, "ES": `en su lugar`}},
		{Tag: "XDESUX", AddStopper: true, Patterns: map[string]string{
			"EN": `under`, "DE": `unter`, "ES": `bajo`}},
		{Tag: "SPPLCR", AddStopper: true, Patterns: map[string]string{
			"EN": `within`, "DE": `innerhalb`, "ES": `dentro de`}},
		{Tag: "SPCLPR", AddStopper: true, Patterns: map[string]string{
			"EN": `of`, "DE": `von`, "ES": `de`}},
		{Tag: "SEPARATE", Patterns: map[string]string{"XX": `;`}},
	}
}

func defaultNamedEntities() []NamedEntitySeed {
	return []NamedEntitySeed{
		{Tag: "TFEU", Language: "EN", Title: "Treaty on the Functioning of the European Union",
			TitlePattern: `Treaty on the Functioning of the European Union`, Abbreviation: "TFEU"},
		{Tag: "TFEU", Language: "DE", Title: "Vertrag über die Arbeitsweise der Europäischen Union",
			TitlePattern: `Vertrag [uü]ber die Arbeitsweise der Europ[aä]ischen Union`, Abbreviation: "AEUV"},
		{Tag: "TFEU", Language: "ES", Title: "Tratado de Funcionamiento de la Unión Europea",
			TitlePattern: `Tratado de Funcionamiento de la Uni[oó]n Europea`, Abbreviation: "TFUE"},

		{Tag: "TEU", Language: "EN", Title: "Treaty on European Union",
			TitlePattern: `Treaty on European Union`, Abbreviation: "TEU"},
		{Tag: "TEU", Language: "DE", Title: "Vertrag über die Europäische Union",
			TitlePattern: `Vertrag [uü]ber die Europ[aä]ische Union`, Abbreviation: "EUV"},
		{Tag: "TEU", Language: "ES", Title: "Tratado de la Unión Europea",
			TitlePattern: `Tratado de la Uni[oó]n Europea`, Abbreviation: "TUE"},

		{Tag: "CHARTER", Language: "EN", Title: "Charter of Fundamental Rights of the European Union",
			TitlePattern: `Charter of Fundamental Rights of the European Union`, Abbreviation: "CFR"},
		{Tag: "CHARTER", Language: "DE", Title: "Charta der Grundrechte der Europäischen Union",
			TitlePattern: `Charta der Grundrechte der Europ[aä]ischen Union`, Abbreviation: "GRC"},
		{Tag: "CHARTER", Language: "ES", Title: "Carta de los Derechos Fundamentales de la Unión Europea",
			TitlePattern: `Carta de los Derechos Fundamentales de la Uni[oó]n Europea`, Abbreviation: "CDFUE"},

		{Tag: "EEC", Language: "EN", Title: "Treaty establishing the European Economic Community",
			TitlePattern: `Treaty establishing the European Economic Community`, Abbreviation: "EEC"},
		{Tag: "EEC", Language: "DE", Title: "Vertrag zur Gründung der Europäischen Wirtschaftsgemeinschaft",
			TitlePattern: `Vertrag zur Gr[uü]ndung der Europ[aä]ischen Wirtschaftsgemeinschaft`, Abbreviation: "EWG"},
		{Tag: "EEC", Language: "ES", Title: "Tratado constitutivo de la Comunidad Económica Europea",
			TitlePattern: `Tratado constitutivo de la Comunidad Econ[oó]mica Europea`, Abbreviation: "CEE"},
	}
}
