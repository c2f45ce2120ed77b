package extract

// stopWords holds accent-folded Spanish function words and very frequent
// adverbs and pronouns that carry no lookup value. Folding makes distinct
// words collide ("anos" is dropped as "años"); that loss is accepted.
var stopWords = foldAll(
	"el", "la", "de", "que", "y", "a", "en", "un", "es", "se", "no", "te", "lo", "le",
	"da", "su", "por", "son", "con", "para", "como", "las", "del", "los", "una", "al",
	"todo", "esta", "me", "uno", "tiene", "más", "si", "ya", "muy", "dos", "tres", "han",
	"bien", "pero", "ese", "esa", "esto", "nos", "ser", "sobre", "hasta", "hace", "tan",
	"sin", "otro", "otra", "vez", "años", "tiempo", "donde", "cuando", "aunque", "quien",
	"cual", "porque", "mismo", "misma", "también", "entonces", "después", "antes", "desde",
	"hacia", "entre", "contra", "durante",
	"este", "estos", "estas", "esos", "esas", "sus", "les", "mis", "tus", "ella", "ellos",
	"ellas", "nosotros", "ustedes", "usted", "hay", "era", "fue", "está", "están", "así",
	"aquí", "ahí", "allí", "cada", "todos", "todas", "mucho", "muchos", "poco", "solo",
	"unos", "unas", "qué", "cómo",
)

func foldAll(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[Fold(w)] = struct{}{}
	}
	return m
}
