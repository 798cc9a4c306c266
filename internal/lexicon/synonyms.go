package lexicon

// ProductSynonyms returns the abbreviation dictionary used to expand query
// tokens before the description search. Declaration order is the tie-break
// when a variant appears under more than one canonical term.
func ProductSynonyms() []Entry {
	return []Entry{
		// hygiene and personal care
		{"pasta de dente", []string{"cr dental", "pasta dent"}},
		{"creme dental", []string{"cr dental", "creme dent", "pasta dental", "pasta dent"}},
		{"shampoo", []string{"xampu", "shampo", "shamp"}},
		{"condicionador", []string{"cond", "condic"}},
		{"desodorante", []string{"desod", "deso", "desodor"}},
		{"sabonete", []string{"sab", "sabao"}},
		{"protetor solar", []string{"prot solar", "protetor sol", "filtro solar"}},
		{"hidratante", []string{"hidr", "hidrat"}},
		{"agua oxigenada", []string{"agua oxig", "h2o2"}},
		{"alcool", []string{"alcool gel", "alcool 70"}},

		// medicines and forms
		{"comprimido", []string{"comp", "cp", "compr"}},
		{"capsula", []string{"caps", "cap"}},
		{"solucao oral", []string{"sol oral", "solucao or"}},
		{"suspensao oral", []string{"susp oral", "suspensao or"}},
		{"xarope", []string{"xpe", "xar"}},
		{"gotas", []string{"gts", "gt"}},
		{"pomada", []string{"pom"}},
		{"creme", []string{"cr"}},
		{"gel", []string{"gl"}},
		{"spray", []string{"spr"}},
		{"injetavel", []string{"inj", "amp", "ampola"}},
		{"supositorio", []string{"supos", "sup"}},
		{"adesivo", []string{"ades"}},

		// common medical terms
		{"antibiotico", []string{"antibiot", "atb"}},
		{"anti inflamatorio", []string{"anti inflam", "antiinflam"}},
		{"analgesico", []string{"analg"}},
		{"antipiretico", []string{"antip", "antipir"}},
		{"vitamina", []string{"vit", "vitam"}},
		{"suplemento", []string{"supl", "suplem"}},
		{"complexo", []string{"compl", "complex"}},

		// commercial classification
		{"generico", []string{"gen", "gerico"}},
		{"similar", []string{"sim"}},
		{"referencia", []string{"ref", "refer"}},

		// route of use
		{"nasal", []string{"nas"}},
		{"ocular", []string{"ocul", "oft", "oftalmico"}},
		{"otologico", []string{"oto", "otol", "ouvido"}},
		{"dermatologico", []string{"derm", "dermat", "pele"}},
		{"bucal", []string{"buc"}},
		{"retal", []string{"ret"}},
		{"vaginal", []string{"vag", "vagin"}},

		// packaging
		{"envelope", []string{"env"}},
		{"frasco", []string{"fr", "fco"}},
		{"blister", []string{"blist", "bl"}},
		{"cartela", []string{"cart"}},
		{"bisnaga", []string{"bisn"}},
		{"tubo", []string{"tb"}},
		{"caixa", []string{"cx"}},
		{"embalagem", []string{"emb", "embal"}},
		{"lata", []string{"lt", "lta"}},
	}
}
