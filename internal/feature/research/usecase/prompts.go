package usecase

// Company Researcherが使用するプロンプト定義。
// 出力は箇条書きまたは1行1項目を要求し、パース処理と対になっています。
const (
	listSystemPrompt = "You are a B2B market researcher. List only company names, one per line."

	listPromptHeader = "Generate a list of %d potential companies to analyze."

	evaluateSystemPrompt = "You are a B2B market analyst. Focus on specific, actionable insights."

	evaluatePromptTemplate = `Evaluate how well %s fits the target market criteria for %s:

Target Market Analysis:
%s

Please provide a list of reasons why %s is a good fit for this product, based on their recent business activities and market position.

Format as bullet points.`

	evaluateContextTemplate = `

Additional context about %s scraped from the vendor's website:

%s`

	signalsSystemPrompt = "You are a B2B sales researcher. Focus on recent, specific evidence of need and concrete reasons for fit. Include dates where possible."

	signalsPromptTemplate = `Analyze %s as a potential customer based on recent business activities and market position.

Please provide a list of recent signals that indicate potential fit, such as:

- Recent announcements or news
- Business changes or initiatives
- Industry trends or adoption patterns
- Growth indicators or financial performance

Format as bullet points.`

	signalsContextTemplate = `

Supplementary context gathered from public web pages about %s:

%s`

	valueSystemPrompt = "You are a B2B sales expert who writes compelling, focused value propositions. Focus on concrete benefits and specific pain points."

	valuePromptTemplate = `Generate a compelling value proposition for %s based on:

Match Reasons:
%s

Recent Signals:
%s

Requirements:
1. Focus on their specific pain points from the match reasons
2. Explain how we solve their unique challenges
3. Highlight the business value we provide
4. Keep it concise (2-3 sentences)
5. Make it specific to their needs
6. Do NOT start with 'Dear' or any greeting - this is a value proposition, not an email`
)
