package lexicon

// PharmaceuticalForms returns the dosage-form dictionary in declaration
// order. Order matters: form detection stops at the first variant that
// matches, so more specific phrases must be declared before the generic ones
// that could shadow them.
func PharmaceuticalForms() []Entry {
	return []Entry{
		// oral solids
		{"comprimido", []string{"comprimido", "comprimidos", "cp", "comp", "tab", "tablet"}},
		{"capsula", []string{"capsula", "capsulas", "caps", "capsule"}},
		{"dragea", []string{"dragea", "drag", "drageas"}},
		{"pastilha", []string{"pastilha", "pastilhas", "past", "lozenge"}},
		{"granulado", []string{"granulado", "granulados", "gran", "sache"}},
		{"po", []string{"po", "powder", "pos"}},
		{"efervescente", []string{"efervescente", "efer", "efervescentes"}},
		{"mastigavel", []string{"mastigavel", "mast", "chewable"}},
		{"sublingual", []string{"sublingual", "subl", "sublinguais"}},
		{"orodispersivel", []string{"orodispersivel", "oro", "odt"}},

		// oral liquids
		{"xarope", []string{"xarope", "xpe", "xaropes", "syrup"}},
		{"solucao", []string{"solucao", "sol", "solution"}},
		{"suspensao", []string{"suspensao", "susp", "suspension"}},
		{"elixir", []string{"elixir", "elix", "elixires"}},
		{"gotas", []string{"gotas", "gts", "gt", "drops"}},
		{"emulsao", []string{"emulsao", "emul", "emulsion"}},

		// dermatological topicals
		{"pomada", []string{"pomada", "pom", "pomadas", "ointment"}},
		{"creme", []string{"creme", "cr", "cremes", "cream"}},
		{"gel", []string{"gel", "gels", "geleia"}},
		{"locao", []string{"locao", "loc", "lotion"}},
		{"emulsao_topica", []string{"emulsao topica"}},
		{"espuma", []string{"espuma", "foam", "mousse"}},
		{"spray_topico", []string{"spray topico"}},
		{"unguento", []string{"unguento", "ung", "unguentos"}},
		{"pasta", []string{"pasta", "pastas"}},
		{"cataplasma", []string{"cataplasma", "emplasto"}},

		// injectables
		{"injetavel", []string{"injetavel", "inj", "injectable"}},
		{"ampola", []string{"ampola", "amp", "ampolas", "ampoule"}},
		{"seringa", []string{"seringa", "seringas", "syringe"}},
		{"frasco_ampola", []string{"frasco ampola", "fa"}},
		{"solucao_injetavel", []string{"solucao injetavel", "si"}},

		// ophthalmic
		{"colirio", []string{"colirio", "col", "eye drops"}},
		{"pomada_oftalmica", []string{"pomada oftalmica", "pom oft"}},
		{"gel_oftalmico", []string{"gel oftalmico"}},

		// nasal
		{"spray_nasal", []string{"spray nasal", "spray", "aerosol nasal"}},
		{"gotas_nasais", []string{"gotas nasais", "gt nasal"}},
		{"gel_nasal", []string{"gel nasal"}},

		// inhalation
		{"aerosol", []string{"aerosol", "aer", "aerossol"}},
		{"inalante", []string{"inalante", "inal", "inhalation"}},
		{"nebulizacao", []string{"nebulizacao", "nebul", "nebulizer"}},
		{"spray_inalatorio", []string{"spray inalatorio"}},

		// rectal
		{"supositorio", []string{"supositorio", "sup", "suppository"}},
		{"enema", []string{"enema", "clister", "lavagem"}},
		{"pomada_retal", []string{"pomada retal", "pom retal"}},

		// vaginal
		{"ovulo", []string{"ovulo", "ovulos", "pessary"}},
		{"creme_vaginal", []string{"creme vaginal", "cr vaginal"}},
		{"gel_vaginal", []string{"gel vaginal"}},
		{"pessario", []string{"pessario", "pess"}},

		// other
		{"adesivo", []string{"adesivo", "adesivos", "patch", "transdermico"}},
		{"tintura", []string{"tintura", "tint", "tinturas"}},
		{"balsamo", []string{"balsamo", "bals", "balm"}},
		{"esmalte", []string{"esmalte", "esm", "nail"}},
		{"lenco", []string{"lenco", "toalha", "wipe"}},
		{"gargarejo", []string{"gargarejo", "garg", "gargle"}},
		{"bochecho", []string{"bochechos", "bochecho", "boch", "mouthwash"}},

		// cosmetics and personal care
		{"shampoo", []string{"shampoo", "shampo", "sh", "xampu", "champo"}},
		{"condicionador", []string{"condicionador", "cond", "conditioner"}},
		{"sabonete", []string{"sabonete", "sab", "soap"}},
		{"mascara_capilar", []string{"mascara capilar", "mask"}},
		{"serum", []string{"serum", "ser"}},
		{"tonico", []string{"tonico", "ton", "toner"}},
		{"fluido", []string{"fluido", "fluid"}},

		// nutritional
		{"capsula_gelatinosa", []string{"capsula gelatinosa", "softgel"}},
		{"goma", []string{"goma", "gomas", "gummy", "gummies"}},
		{"barra", []string{"barra", "bar"}},
		{"bebida", []string{"bebida", "drink"}},
		{"shake", []string{"shake", "batido"}},

		// special
		{"filme", []string{"filme", "film", "strip"}},
		{"micropilula", []string{"micropilula", "minipill"}},
		{"implante", []string{"implante", "implant"}},
		{"dispositivo", []string{"dispositivo", "device", "diu"}},
		{"kit", []string{"kit", "conjunto"}},
	}
}
