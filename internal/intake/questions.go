package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const stageWorkQuestions = "work_questions"

var basicTemplates = map[Language][BasicQuestionCount]string{
	English: {
		"What is your full name?",
		"How old are you?",
		"What is your phone number?",
		"How many years of experience do you have in this trade?",
	},
	Hindi: {
		"आपका पूरा नाम क्या है?",
		"आपकी उम्र कितनी है?",
		"आपका फोन नंबर क्या है?",
		"आपको इस काम में कितने साल का अनुभव है?",
	},
	Marathi: {
		"तुमचे पूर्ण नाव काय आहे?",
		"तुमचे वय किती आहे?",
		"तुमचा फोन नंबर काय आहे?",
		"तुम्हाला या कामाचा किती वर्षांचा अनुभव आहे?",
	},
	Kannada: {
		"ನಿಮ್ಮ ಪೂರ್ಣ ಹೆಸರು ಏನು?",
		"ನಿಮ್ಮ ವಯಸ್ಸು ಎಷ್ಟು?",
		"ನಿಮ್ಮ ಫೋನ್ ನಂಬರ್ ಏನು?",
		"ಈ ಕೆಲಸದಲ್ಲಿ ನಿಮಗೆ ಎಷ್ಟು ವರ್ಷಗಳ ಅನುಭವವಿದೆ?",
	},
	Tamil: {
		"உங்கள் முழு பெயர் என்ன?",
		"உங்கள் வயது என்ன?",
		"உங்கள் தொலைபேசி எண் என்ன?",
		"இந்த வேலையில் உங்களுக்கு எத்தனை ஆண்டுகள் அனுபவம் உள்ளது?",
	},
	Telugu: {
		"మీ పూర్తి పేరు ఏమిటి?",
		"మీ వయస్సు ఎంత?",
		"మీ ఫోన్ నంబర్ ఏమిటి?",
		"ఈ పనిలో మీకు ఎన్ని సంవత్సరాల అనుభవం ఉంది?",
	},
	Bengali: {
		"আপনার পুরো নাম কী?",
		"আপনার বয়স কত?",
		"আপনার ফোন নম্বর কী?",
		"এই কাজে আপনার কত বছরের অভিজ্ঞতা আছে?",
	},
}

// workTemplates hold {trade} placeholders.
var workTemplates = map[Language][WorkQuestionCount]string{
	English: {
		"What kind of {trade} work have you done recently?",
		"Which tools do you use most often as a {trade}?",
		"Tell us about a difficult {trade} job you finished.",
		"How do you stay safe while doing {trade} work?",
		"What do you do when a {trade} job does not go as planned?",
		"What kind of {trade} work would you like to do next?",
	},
	Hindi: {
		"आपने हाल ही में {trade} का कौन सा काम किया है?",
		"{trade} के काम में आप सबसे ज़्यादा कौन से औज़ार इस्तेमाल करते हैं?",
		"{trade} का कोई मुश्किल काम बताइए जो आपने पूरा किया।",
		"{trade} का काम करते समय आप अपनी सुरक्षा कैसे रखते हैं?",
		"जब {trade} का काम योजना के अनुसार नहीं होता तो आप क्या करते हैं?",
		"आगे आप {trade} का कौन सा काम करना चाहेंगे?",
	},
}

// BasicQuestions returns the four identity questions for lang, in English when lang has no template.
func BasicQuestions(lang Language) []string {
	tpl, ok := basicTemplates[lang]
	if !ok {
		tpl = basicTemplates[English]
	}
	return append([]string(nil), tpl[:]...)
}

// TemplateWorkQuestions fills the canned work questions for lang with trade.
func TemplateWorkQuestions(trade string, lang Language) []string {
	tpl, ok := workTemplates[lang]
	if !ok {
		tpl = workTemplates[English]
	}
	if strings.TrimSpace(trade) == "" {
		trade = DefaultTrade
	}
	out := make([]string, 0, WorkQuestionCount)
	for _, q := range tpl {
		out = append(out, strings.ReplaceAll(q, "{trade}", trade))
	}
	return out
}

var workQuestionsSchema = mustSchema("work questions", fmt.Sprintf(`{
	"type": "array",
	"minItems": %d,
	"items": {"type": "string", "minLength": 1}
}`, WorkQuestionCount))

// QuestionGenerator builds the fixed ten-question interview.
type QuestionGenerator struct {
	resolver *Resolver
}

func NewQuestionGenerator(opts Options) *QuestionGenerator {
	return &QuestionGenerator{resolver: opts.resolver("question_generator")}
}

// WorkQuestions returns exactly six trade questions from the model or the template table.
// experience is a hint for the prompt; zero means unknown.
func (g *QuestionGenerator) WorkQuestions(ctx context.Context, trade string, experience int, lang Language) []string {
	questions, _ := Resolve(ctx, g.resolver, stageWorkQuestions,
		func(ctx context.Context) ([]string, error) {
			reply, err := g.resolver.Ask(ctx, workQuestionsPrompt(trade, experience, lang))
			if err != nil {
				return nil, err
			}
			doc, err := workQuestionsSchema.parse(reply)
			if err != nil {
				return nil, err
			}
			out := make([]string, 0, WorkQuestionCount)
			for _, item := range gjson.Parse(doc).Array() {
				if q := strings.TrimSpace(item.Str); q != "" {
					out = append(out, q)
				}
				if len(out) == WorkQuestionCount {
					return out, nil
				}
			}
			return nil, fmt.Errorf("%w: only %d usable questions", errMalformedReply, len(out))
		},
		func() []string { return TemplateWorkQuestions(trade, lang) },
	)
	return questions
}

// Questions concatenates the basic and work questions, basic first.
func (g *QuestionGenerator) Questions(ctx context.Context, trade string, lang Language) []string {
	return append(BasicQuestions(lang), g.WorkQuestions(ctx, trade, 0, lang)...)
}

func workQuestionsPrompt(trade string, experience int, lang Language) string {
	exp := "unknown"
	if experience > 0 {
		exp = fmt.Sprintf("%d years", experience)
	}
	return fmt.Sprintf(`Write %d short questions for a %s about their work and skills, for example what their most recent job was.
Do not test the worker; only collect information about the work they do.
Questions must be simple and suitable for spoken answers.
%s
Experience: %s
Return ONLY a JSON array of strings.`, WorkQuestionCount, trade, languageInstruction(lang, "Write the questions"), exp)
}

func languageInstruction(lang Language, verb string) string {
	if lang == English || !lang.Valid() {
		return verb + " in English."
	}
	return fmt.Sprintf("%s in %s. Do NOT use English.", verb, lang)
}
