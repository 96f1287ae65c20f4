package cv

// Static option tables shared by the editor, the anonymizer and the
// renderers. Lookups never fail: unknown keys degrade to the raw key (or to
// the generic company label), so stale or future enum values still render.

// GenericCompanyLabel replaces the company name when the company type is
// unknown or absent in an anonymized projection.
const GenericCompanyLabel = "Structure pharmaceutique"

var companyTypeLabels = map[string]string{
	"officine":       "Pharmacie d'officine",
	"hopital":        "Pharmacie hospitalière",
	"clinique":       "Clinique privée",
	"laboratoire":    "Laboratoire d'analyses",
	"grossiste":      "Grossiste-répartiteur",
	"parapharmacie":  "Parapharmacie",
	"industrie":      "Industrie pharmaceutique",
	"agence_interim": "Agence d'intérim spécialisée",
	"autre":          "Autre structure",
}

// anonymizedCompanyLabels keys company_type to the label shown instead of the
// raw company name in anonymous mode. Kept separate from companyTypeLabels:
// the editor shows the type, the anonymizer replaces the employer.
var anonymizedCompanyLabels = map[string]string{
	"officine":       "Pharmacie d'officine",
	"hopital":        "Établissement hospitalier",
	"clinique":       "Clinique privée",
	"laboratoire":    "Laboratoire d'analyses médicales",
	"grossiste":      "Grossiste-répartiteur pharmaceutique",
	"parapharmacie":  "Enseigne de parapharmacie",
	"industrie":      "Laboratoire pharmaceutique industriel",
	"agence_interim": "Agence d'intérim spécialisée",
}

var companySizeLabels = map[string]string{
	"solo":   "1 personne",
	"small":  "2-5 personnes",
	"medium": "6-15 personnes",
	"large":  "16-50 personnes",
	"xlarge": "Plus de 50 personnes",
}

var diplomaTypeLabels = map[string]string{
	"docteur_pharmacie": "Docteur en pharmacie",
	"bp_preparateur":    "BP Préparateur en pharmacie",
	"deust_preparateur": "DEUST Préparateur/Technicien en pharmacie",
	"bts_dietetique":    "BTS Diététique",
	"licence_pro":       "Licence professionnelle",
	"master":            "Master",
	"cqp_dermo":         "CQP Dermo-cosmétique pharmaceutique",
	"autre":             "Autre diplôme",
}

var mentionLabels = map[string]string{
	"passable":   "Passable",
	"assez_bien": "Assez bien",
	"bien":       "Bien",
	"tres_bien":  "Très bien",
}

var languageLevelLabels = map[string]string{
	"debutant":      "Débutant",
	"intermediaire": "Intermédiaire",
	"courant":       "Courant",
	"bilingue":      "Bilingue",
	"natif":         "Langue maternelle",
}

var missionTypeLabels = map[string]string{
	"animation":     "Animation commerciale",
	"formation":     "Formation d'équipe officinale",
	"merchandising": "Merchandising",
	"lancement":     "Lancement de produit",
	"audit":         "Audit de linéaire",
}

func lookupLabel(table map[string]string, key string) string {
	if label, ok := table[key]; ok {
		return label
	}
	return key
}

// CompanyTypeLabel returns the editor-facing label for a company type key.
func CompanyTypeLabel(key string) string { return lookupLabel(companyTypeLabels, key) }

// AnonymousCompanyLabel returns the label shown in place of a raw company
// name. The raw name never reaches an anonymized projection through this
// function: unknown or empty types resolve to GenericCompanyLabel.
func AnonymousCompanyLabel(companyType string) string {
	if label, ok := anonymizedCompanyLabels[companyType]; ok {
		return label
	}
	return GenericCompanyLabel
}

func CompanySizeLabel(key string) string { return lookupLabel(companySizeLabels, key) }

func DiplomaTypeLabel(key string) string { return lookupLabel(diplomaTypeLabels, key) }

func MentionLabel(key string) string { return lookupLabel(mentionLabels, key) }

func LanguageLevelLabel(key string) string { return lookupLabel(languageLevelLabels, key) }

func MissionTypeLabel(key string) string { return lookupLabel(missionTypeLabels, key) }
