package crisis

import "github.com/alemhq/alem/pkg/lang"

// Curated safety keyword lists. Escalation phrases are matched on word
// boundaries; danger and suicidal phrases are matched as substrings.
var defaultEscalationKeywords = map[lang.Code][]string{
	lang.English:  {"help", "emergency", "danger", "unsafe", "speak to someone", "human", "representative"},
	lang.Amharic:  {"እገዛ", "አደጋ", "አጋዥ", "አስፈላጊ", "ወከል", "ሰው"},
	lang.Oromifa:  {"gargaarsa", "rakkoo", "namatti himi", "naaf bilisaa", "namni"},
	lang.Tigrigna: {"ሓገዝ", "ኣደጋ", "ሰብ ክዛረብ", "እገዳይ", "ወኪል"},
}

var defaultDangerKeywords = map[lang.Code][]string{
	lang.English:  {"help me now", "emergency", "he is here", "someone is", "right now", "happening now"},
	lang.Amharic:  {"እርዱኝ አሁን", "አደጋ", "እሱ እዚህ ነው", "አሁን ነው", "አሁን እየሆነ ነው"},
	lang.Oromifa:  {"amma na gargaari", "balaa", "inni asan jira", "namni tokko", "ammuma", "amma ta'aa jira"},
	lang.Tigrigna: {"ሓግዙኒ ሕጂ", "ሓደጋ", "ንሱ ኣብዚ ኣሎ", "ሕጂ እዩ", "ሕጂ የጋጥም ኣሎ"},
}

var defaultSuicidalKeywords = map[lang.Code][]string{
	lang.English:  {"want to die", "kill myself", "end it all", "no point living", "better off dead"},
	lang.Amharic:  {"መሞት እፈልጋለሁ", "ራሴን መግደል", "መኖር አልፈልግም", "የመኖር ትርጉም የለውም"},
	lang.Oromifa:  {"du'uu barbaada", "of ajjeesuu", "hunda dhaabuu", "jiraachuun faayidaa hin qabu", "du'uun wayya"},
	lang.Tigrigna: {"ክመውት ደልየ", "ነብሰይ ክቐትል", "ክነብር ኣይደልን", "ምንባር ትርጉም የብሉን"},
}

// Distress phrasing is only curated in English for now; see the classifier
// doc for how this interacts with non-English sessions.
var defaultDistressPhrases = []string{"can't take it", "too much", "exhausted"}
