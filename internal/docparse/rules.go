package docparse

import "regexp"

// Questionnaire boundary patterns. The stray wildcards inside words are
// deliberate: exported documents break lines (and sometimes characters) in
// odd places, so only the stable fragments of each phrasing are matched.
const (
	questionTechnicallyChallenging = `W(?s:.*)at work(?s:.*)ave you found mos(?s:.*)challenging(?s:.*)caree(?s:.*)wh(?s:.*)\?`
	questionWorkProudOf            = `W(?s:.*)at work(?s:.*)ave you done that you(?s:.*)particularl(?s:.*)proud o(?s:.*)and why\?`
	questionHappiestCareer         = `W(?s:.*)en have you been happiest in your professiona(?s:.*)caree(?s:.*)and why\?`
	questionUnhappiestCareer       = `W(?s:.*)en have you been unhappiest in your professiona(?s:.*)caree(?s:.*)and why\?`
	questionValueReflected         = `F(?s:.*)r one of our values(?s:.*)describe an example of ho(?s:.*)it wa(?s:.*)reflected(?s:.*)particula(?s:.*)body(?s:.*)you(?s:.*)work\.`
	questionValueViolated          = `F(?s:.*)r one of our values(?s:.*)describe an example of ho(?s:.*)it wa(?s:.*)violated(?s:.*)you(?s:.*)organization o(?s:.*)work\.`
	questionValuesInTension        = `F(?s:.*)r a pair of our values(?s:.*)describe a time in whic(?s:.*)the tw(?s:.*)values(?s:.*)tensio(?s:.*)for(?s:.*)your(?s:.*)and how yo(?s:.*)resolved it\.`
	questionWhyUs                  = `W(?s:.*)y do you want to work for us\?`
)

// Sample-section rule tables. Each table is ordered most specific first; the
// later entries cover phrasings used by older versions of the materials
// document and by role-specific variants.
var (
	WorkSamples = []*regexp.Regexp{
		Boundary(`Work sample\(s\)`, "Writing samples"),
		Boundary(`If(?s:.*)his work is entirely proprietary(?s:.*)please describe it as fully as y(?s:.*)can, providing necessary context\.`, "Writing samples"),
		Boundary(`What would you have done differently\?`, "Exploratory samples"),
		Boundary(`Some questions(?s:.*)o have in mind as you describe them:`, "Exploratory samples"),
		Boundary(`Work samples`, "Exploratory samples"),
	}

	WritingSamples = []*regexp.Regexp{
		Boundary(`Writing sample\(s\)`, "Analysis samples"),
		Boundary(`Please submit at least one writing sample \(and no more tha(?s:.*)three\) that you feel represent(?s:.*)you(?s:.*)providin(?s:.*)links if(?s:.*)necessary\.`, "Analysis samples"),
		Boundary(`Writing samples`, "Analysis samples"),
	}

	AnalysisSamples = []*regexp.Regexp{
		Boundary(`Analysis sample\(s\)$`, "Presentation samples"),
		Boundary(`please recount a(?s:.*)incident(?s:.*)which you analyzed syste(?s:.*)misbehavior(?s:.*)including as much technical detail as you can recall\.`, "Presentation samples"),
		Boundary(`Analysis samples`, "Presentation samples"),
	}

	PresentationSamples = []*regexp.Regexp{
		Boundary(`Presentation sample\(s\)`, "Questionnaire"),
		Boundary(`I(?s:.*)you don’t have a publicl(?s:.*)available presentation(?s:.*)pleas(?s:.*)describe a topic on which you have presented in th(?s:.*)past\.`, "Questionnaire"),
		Boundary(`Presentation samples`, "Questionnaire"),
	}

	ExploratorySamples = []*regexp.Regexp{
		Boundary(`Exploratory sample\(s\)`, "Questionnaire"),
		Boundary(`What’s an example o(?s:.*)something that you needed to explore, reverse engineer, decipher or otherwise figure out a(?s:.*)part of a program or project and how did you do it\? Please provide as much detail as you ca(?s:.*)recall\.`, "Questionnaire"),
		Boundary(`Exploratory samples`, "Questionnaire"),
	}
)

// Questionnaire rule tables. Each question's section runs until the start of
// the next question; the last one runs to the end of the document. The
// second entry in each table is the plain phrasing without gap wildcards,
// kept for documents that export cleanly.
var (
	QuestionTechnicallyChallenging = []*regexp.Regexp{
		Boundary(questionTechnicallyChallenging, questionWorkProudOf),
		Boundary(`What work have you found most technically challenging in your career and why\?`, questionWorkProudOf),
	}

	QuestionProudOf = []*regexp.Regexp{
		Boundary(questionWorkProudOf, questionHappiestCareer),
		Boundary(`What work have you done that you were particularly proud of and why\?`, questionHappiestCareer),
	}

	QuestionHappiest = []*regexp.Regexp{
		Boundary(questionHappiestCareer, questionUnhappiestCareer),
		Boundary(`When have you been happiest in your professional career and why\?`, questionUnhappiestCareer),
	}

	QuestionUnhappiest = []*regexp.Regexp{
		Boundary(questionUnhappiestCareer, questionValueReflected),
		Boundary(`When have you been unhappiest in your professional career and why\?`, questionValueReflected),
	}

	QuestionValueReflected = []*regexp.Regexp{
		Boundary(questionValueReflected, questionValueViolated),
		Boundary(`For one of our values, describe an example of how it was reflected in a particular body of your work\.`, questionValueViolated),
	}

	QuestionValueViolated = []*regexp.Regexp{
		Boundary(questionValueViolated, questionValuesInTension),
		Boundary(`For one of our values, describe an example of how it was violated in your organization or work\.`, questionValuesInTension),
	}

	QuestionValuesInTension = []*regexp.Regexp{
		Boundary(questionValuesInTension, questionWhyUs),
		Boundary(`For a pair of our values, describe a time in which the two values came into tension for you or your work, and how you resolved it\.`, questionWhyUs),
	}

	QuestionWhyUs = []*regexp.Regexp{
		Boundary(questionWhyUs, ""),
		Boundary(`Why do you want to work for us\?`, ""),
	}
)
