package usecase

import (
	"strings"
	"text/template"
)

const researchPrompt = `Based on these search results about {{.Company}}, extract key information that would be relevant for the {{.Club}} club seeking sponsorship but also any key similarities that could be used to personalize/align the sponsorship request:

{{.Results}}

Please provide information about:
1. Company's main products or services
2. Company's core values and mission (what is it that they value? e.g. innovation, sustainability, american manufacturing, etc.)
3. Any history of supporting educational, student club initiatives, or simply philanthropy of any kind
4. Technical areas that might align with the {{.Club}} project - e.g. transportation, engineering, sustainability, etc. (could they benefit from a case study?)
5. Any large recent achievements or projects that could be highlighted or brought up in relation to {{.Club}}'s project, achievements, connections, etc.`

const identifyContactsPrompt = `Based on these search results about potential contacts at {{.Company}},
identify the most relevant decision-makers who would likely handle sponsorship requests
from university engineering clubs:

{{.Results}}

For each relevant person you can identify, extract:
1. Full name
2. Job title/role
3. Department (if available)
4. LinkedIn profile URL (if available)
5. Any indication of their decision-making authority
6. Any connection to engineering, education, or student initiatives

Format the response as a structured list of the top 3 most relevant people.
If you cannot identify specific individuals, suggest the most relevant roles/titles
that would typically handle sponsorship decisions at this type of company.`

const contactProfilePrompt = `Create a detailed professional profile for {{.Contact}} at {{.Company}}.
If this is a specific person, research their professional background.
If this is a role/title, create a typical profile for someone in this position.

Include:
1. Likely educational background
2. Career trajectory
3. Professional interests and priorities
4. Communication style (formal/informal, technical/non-technical, data-driven/relationship-focused)
5. Possible connections to engineering, education, or student initiatives
6. Decision-making approach (analytical, collaborative, etc.)

Be specific but realistic. If creating a typical profile for a role rather than a real person,
clearly indicate this is a "typical profile" rather than specific information.`

const contactConnectionsPrompt = `Research potential connections between {{.Contact}} at {{.Company}} and:
1. {{.Affiliation}}
2. Engineering education
3. Student competition teams
{{- range $i, $f := .Focus}}
{{add $i 4}}. {{$f}}
{{- end}}

If this is a role rather than a specific person, suggest typical connections
someone in this position might have to these areas.

List any possible connections you find, even if tentative.`

const communicationStylePrompt = `Based on this profile for {{.Contact}} at {{.Company}}:

{{.Profile}}

Analyze their likely communication preferences:
1. Formality level (very formal to very casual)
2. Communication medium preference (email, call, meeting)
3. Information density preference (detailed/technical vs. high-level/conceptual)
4. Persuasion strategies likely to resonate (data-driven, emotional, social proof, etc.)
5. Key phrases or terminology that would resonate with their background

Provide specific recommendations for communicating effectively with this person.`

const partnershipPrompt = `Analyze the strategic partnership potential between {{.Company}} and {{.Club}}
based on the following information:

COMPANY'S PREVIOUS SPONSORSHIPS AND PARTNERSHIPS:
{{.Sponsorships}}

COMPANY'S STRATEGIC INITIATIVES:
{{.Initiatives}}

{{upper .Club}} INFORMATION:
{{.ClubInfo}}

Please provide:

1. PREVIOUS SPONSORSHIP PATTERNS:
   - Types of organizations they typically sponsor
   - Sponsorship amount ranges (if available)
   - What they expect in return (exposure, recruitment, technology access, etc.)

2. ALIGNMENT AREAS:
   - Specific technical areas where {{.Club}}'s work aligns with company initiatives
   - Educational or workforce development alignments
   - Innovation or R&D alignments
   - Brand or marketing alignments

3. UNIQUE VALUE PROPOSITIONS:
   - What unique value can {{.Club}} offer this specific company?
   - How might the company benefit from this partnership beyond general goodwill?
   - What specific aspects of {{.Club}} would most appeal to this company?
   - How could partnership metrics be measured to show ROI for the company?

Be specific, focusing on concrete alignment points rather than generic benefits.`

const valuePropositionPrompt = `Based on this partnership analysis for {{.Company}} and {{.Club}}:

{{.Analysis}}

Generate 3-5 specific, unique value propositions that {{.Club}} could offer {{.Company}}.
These should be tailored specifically to this company, not generic benefits.

Format each as:
1. VALUE PROPOSITION: [one-line statement]
   DETAILS: [2-3 sentences explaining how this creates value for the company]
   IMPLEMENTATION: [How {{.Club}} would deliver on this]`

const languagePrompt = `Analyze the language patterns used by {{.Company}} in these communication samples:

{{.Samples}}

Please analyze:

1. FORMALITY LEVEL:
   - How formal/informal is their communication?
   - Do they use technical jargon or plain language?
   - Do they use first person (we, our) or third person?

2. TONE AND EMOTIONAL ATTRIBUTES:
   - What emotional tone do they use (enthusiastic, restrained, ambitious, etc.)?
   - How do they express values and priorities?
   - Do they emphasize innovation, tradition, reliability, etc.?

3. SENTENCE STRUCTURE AND COMPLEXITY:
   - Do they use simple, direct sentences or complex, nuanced phrasing?
   - How technical is their language?
   - What reading level would you estimate for their content?

4. KEY TERMINOLOGY AND PHRASES:
   - What specific industry terms or company-specific vocabulary do they use?
   - Are there recurring phrases or concepts?
   - What words do they use to describe themselves?

Conclude with specific recommendations for matching their communication style.`

const decisionStylePrompt = `Based on these communication samples from {{.Company}}:

{{.Samples}}

Analyze their likely decision-making style:

1. How do they appear to make decisions? (data-driven, intuitive, consensus-based, etc.)
2. What values seem to drive their decisions? (innovation, reliability, cost-efficiency, etc.)
3. What kind of evidence or reasoning would likely persuade them?
4. Do they seem to prefer long-term strategic thinking or short-term practical results?
5. How might they evaluate sponsorship opportunities specifically?

Conclude with specific recommendations for framing requests to align with their decision-making style.`

const culturalValuesPrompt = `Based on these communication samples from {{.Company}}:

{{.Samples}}

Extract their core cultural values:

1. What principles or ideals do they explicitly state as important?
2. What values are implied by their language and priorities?
3. How do they position themselves in relation to their industry, community, and society?
4. What do they seem to be most proud of as an organization?

List 5-7 specific values with a brief explanation of how each is expressed.
Then suggest how {{.Club}} could authentically align with each value.`

const recommendationsPrompt = `Based on this cultural assessment of {{.Company}}:

LANGUAGE ANALYSIS:
{{.Language}}

DECISION-MAKING STYLE:
{{.DecisionStyle}}

CULTURAL VALUES:
{{.Values}}

Provide specific recommendations for {{.Club}}'s communication approach:

1. TONE AND FORMALITY: How should the email be written to match their style?
2. CONTENT FOCUS: What should be emphasized or highlighted?
3. PERSUASION APPROACH: What will be most convincing to them?
4. SPECIFIC LANGUAGE: What terms or phrases should be used or avoided?
5. VALUE ALIGNMENT: How should {{.Club}} position itself to align with their values?

Be specific and actionable with examples of language to use.`

const clubQuestionPrompt = `Use the following pieces of context to answer the question at the end.
If you don't know the answer, just say that you don't know, don't try to make up an answer.

{{.Context}}

Question: {{.Question}}
Helpful Answer:`

const templateAnalysisPrompt = `Analyze this email template for sponsorship requests:

TITLE: {{.Template.Title}}
SUBJECT: {{.Template.Subject}}
BODY:
{{.Template.Body}}

Please provide:
1. Primary purpose (monetary donation, parts donation, service request, etc.)
2. Target audience characteristics (industry type, company size, etc.)
3. Key persuasion techniques used
4. Tone analysis (formal, friendly, urgent, etc.)
5. Structure breakdown (how information is organized)
6. Strongest elements that should be preserved
7. Elements that could be improved
8. Keywords that signal when this template would be most appropriate

Note: This template already uses the fixed introduction "{{.Intro}}" which must be preserved in all emails.`

const selectionPrompt = `Based on this comprehensive company intelligence:

BASIC COMPANY INFO:
{{.CompanyInfo}}

DECISION MAKERS:
{{.DecisionMakers}}

PARTNERSHIP POTENTIAL:
{{.Partnership}}

VALUE PROPOSITIONS:
{{.ValuePropositions}}

DECISION-MAKING STYLE:
{{.DecisionStyle}}

COMMUNICATION RECOMMENDATIONS:
{{.Recommendations}}

And these available email template analyses:

{{.Analyses}}

Determine which template would be most effective for this company. Consider:

1. Which template best matches the communication style of the decision makers?
2. Which template structure would best support the specific value propositions identified?
3. Which template aligns best with the company's decision-making style?
4. Which template can be adapted to incorporate the cultural compatibility recommendations?

First, rank the templates from most to least appropriate with clear reasoning based on the relationship intelligence.
Then provide your final selection of the single best template, with a detailed explanation of why it's optimal given what we know about the specific people who will read it.

Note: All templates use the fixed introduction "{{.Intro}}" which must be maintained.`

const composePrompt = `Create a highly personalized sponsorship email for {{.Club}} using this selected template
and comprehensive relationship intelligence:

TEMPLATE TITLE: {{.Template.Title}}
TEMPLATE SUBJECT: {{.Template.Subject}}
TEMPLATE BODY:
{{.Template.Body}}

TEMPLATE SELECTION REASONING:
{{.Reasoning}}

COMPANY INFORMATION:
{{.CompanyInfo}}

INTENDED PRIMARY RECIPIENT:
{{.Recipient}}

RECIPIENT'S COMMUNICATION STYLE:
{{.CommunicationStyle}}

UNIQUE VALUE PROPOSITIONS FOR THIS COMPANY:
{{.ValuePropositions}}

CULTURAL COMPATIBILITY RECOMMENDATIONS:
{{.Recommendations}}

CLUB INFORMATION:
{{.ClubInfo}}

Instructions:
1. CRITICAL: The email MUST begin with "Hello [company name]," followed by a line break, and THEN "{{.Intro}}" - do not use any other name or role
2. Keep the partnership value propositions realistic and based on {{.Club}}'s EXISTING capabilities - DO NOT propose elaborate new programs or initiatives like custom challenges or research programs
3. Focus on established, proven benefits like: brand visibility at competitions, access to engineering talent, case studies of technology, sponsorship logo placement
4. Match the communication style of the recipient using the provided recommendations
5. Reference any personal or professional connections the recipient might have to engineering, education, or student initiatives
6. Use language, tone, and structure that aligns with the company's cultural preferences
7. Make the call to action clear and specific, tailored to the recipient's decision-making style
8. Keep the email under 300 words while preserving all key persuasive elements

Return the email in this format:
SUBJECT: [personalized subject line]

[complete email body]`

const prospectPrompt = `Find {{.Count}} UNIQUE companies that match these criteria:
Industry: {{or .Industry "Any"}}
Size: {{or .Size "Any"}}
Location: {{or .Location "Any"}}
Sector: {{or .Sector "Any"}}
{{- if .Vibe}}
Vibe: {{.Vibe}}
{{- end}}

IMPORTANT CONSTRAINTS:
1. DO NOT include any of these companies that are already in our database: {{.Existing}}
2. Provide DIFFERENT companies than have been seen before
3. Each company should be real and verifiable

Additional details to consider: {{or .Details "None"}}

For each company, please provide the following information in JSON format:
1. name: The company name
2. website: The company website
3. email: A relevant contact email if available (or placeholder if not)
4. description: A brief description of the company (2-3 sentences)
5. contact_person: Name of a relevant contact person (if available)
6. industry: The company's industry
7. location: The company's location
8. size: Approximate company size (Small, Medium, Large)

Return the results as a JSON array of company objects.`

var prompts = template.New("prompts").Funcs(template.FuncMap{
	"add":   func(a, b int) int { return a + b },
	"upper": strings.ToUpper,
})

func init() {
	for name, text := range map[string]string{
		"research":       researchPrompt,
		"contacts":       identifyContactsPrompt,
		"profile":        contactProfilePrompt,
		"connections":    contactConnectionsPrompt,
		"communication":  communicationStylePrompt,
		"partnership":    partnershipPrompt,
		"value":          valuePropositionPrompt,
		"language":       languagePrompt,
		"decision":       decisionStylePrompt,
		"values":         culturalValuesPrompt,
		"recommendation": recommendationsPrompt,
		"question":       clubQuestionPrompt,
		"analysis":       templateAnalysisPrompt,
		"selection":      selectionPrompt,
		"compose":        composePrompt,
		"prospect":       prospectPrompt,
	} {
		template.Must(prompts.New(name).Parse(text))
	}
}

// render は名前付きプロンプトにデータを埋め込みます。
func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
