package i18n

// OutputMode 输出模式：最终结果为 Prefix + 渲染后的模板
type OutputMode struct {
	Label  string `json:"label" yaml:"label"`
	Prefix string `json:"prefix" yaml:"prefix"`
}

const modeSeparator = "\n\n----------------\n\n"

var outputModes = map[string][]OutputMode{
	"zh": {
		{Label: "🚀 智能預設 (Auto)", Prefix: ""},
		{Label: "🤫 靜默接收模式 (Silent Ack)", Prefix: "【系統提示】：請接收以下輸入內容，但【先不要執行】任何任務。你只需要簡單回覆一句『🆗 收到，我已理解您的指令，請輸入 OK 讓我開始執行。』，然後等待使用者的下一個信號。除此之外不要輸出任何其他內容。" + modeSeparator},
		{Label: "🎨 繪圖咒語大師 (Midjourney)", Prefix: "【系統提示】：請扮演專業的 AI 繪圖詠唱師 (Prompt Engineer)。請根據用戶下方的描述，撰寫給 Midjourney v6 使用的「英文提示詞」。包含：主體、藝術風格、光影、鏡頭角度及長寬比 (--ar)。不需要解釋，直接輸出提示詞即可。" + modeSeparator},
		{Label: "🎬 影片運鏡導演 (Sora/Runway)", Prefix: "【系統提示】：請扮演專業的 AI 影片導演。請根據用戶需求，撰寫詳細的影片生成提示詞。重點描述：運鏡方式 (Pan, Zoom, Dolly)、光影氛圍、物理動態以及場景連貫性。格式請針對 Runway Gen-2 或 Sora 優化。" + modeSeparator},
		{Label: "🐍 純代碼模式 (Code Only)", Prefix: "【系統提示】：你現在是一台無情的寫程式機器。針對用戶的問題，【只輸出程式碼區塊】(Python/JS/HTML 等)。不要有任何開場白、結尾、解釋或註解。給我 code 就好。" + modeSeparator},
		{Label: "🐞 除錯醫生 (Bug Fixer)", Prefix: "【系統提示】：請分析以下程式碼的錯誤 (Bug)。先用簡短的一句話解釋錯誤原因，然後提供【修正後的完整程式碼區塊】。請注重程式的安全性和執行效率。" + modeSeparator},
		{Label: "👶 費曼學習法 (ELI5)", Prefix: "【系統提示】：請把以下的內容解釋給我聽，假設我是一個只有 5 歲的小朋友。使用簡單的生活譬喻，避免專業術語，語氣要生動有趣。" + modeSeparator},
		{Label: "🧠 深度思考鏈 (CoT)", Prefix: "【系統提示】：請不要直接給我答案。請使用「思維鏈 (Chain of Thought)」模式，一步一步地思考。將問題拆解，分析利弊，展示你的推論過程，最後再給出結論。" + modeSeparator},
	},
	"en": {
		{Label: "🚀 Auto / Default", Prefix: ""},
		{Label: "🤫 Silent Receiver (Ack Only)", Prefix: "SYSTEM OVERRIDE: Receive the following input BUT DO NOT EXECUTE IT YET. Simply reply with '🆗 Received. Waiting for your command.' and wait for the user's next signal. Do not output anything else." + modeSeparator},
		{Label: "🎨 Image Gen Master (Midjourney)", Prefix: "SYSTEM OVERRIDE: Act as a professional prompt engineer for AI image generators (Midjourney v6). Write a detailed, comma-separated prompt including Subject, Art Style, Lighting, Camera Angle, and Aspect Ratio (--ar)." + modeSeparator},
		{Label: "🎬 Video Director (Sora/Runway)", Prefix: "SYSTEM OVERRIDE: Act as a professional AI video director. Write a detailed video generation prompt focusing on Camera Movement, Lighting, Physics, and Continuity." + modeSeparator},
		{Label: "🐍 Code Generator (No Yapping)", Prefix: "SYSTEM OVERRIDE: You are a coding machine. Output ONLY the code block to solve the problem. Do not provide explanations or comments. Just the code." + modeSeparator},
		{Label: "🐞 Bug Fixer (Debug)", Prefix: "SYSTEM OVERRIDE: Analyze the input code for bugs. Explain the error briefly, then provide the corrected code block." + modeSeparator},
		{Label: "👶 ELI5 (Simple Logic)", Prefix: "SYSTEM OVERRIDE: Explain the concept as if I am a 12-year-old beginner. Use simple analogies and avoid jargon." + modeSeparator},
		{Label: "🧠 Chain of Thought (CoT)", Prefix: "SYSTEM OVERRIDE: Think step-by-step. Break down the problem, analyze pros and cons, and show your reasoning process." + modeSeparator},
	},
}

// OutputModes 返回指定语言的输出模式列表（副本），未知语言降级到中文
func OutputModes(lang string) []OutputMode {
	modes, ok := outputModes[lang]
	if !ok {
		modes = outputModes[DefaultLanguage]
	}
	return append([]OutputMode(nil), modes...)
}

// OutputModeAt 返回第 i 个输出模式，越界时返回第一个（Auto）
func OutputModeAt(lang string, i int) OutputMode {
	modes := OutputModes(lang)
	if i < 0 || i >= len(modes) {
		return modes[0]
	}
	return modes[i]
}
