package icon

type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Star
	Calendar
	Clock
	Film
	TV
	Check
	Plus
	Search
	Play
	Mark
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・;)",
		squares: "🟨",
	},
	Star: {
		emoji:   "⭐",
		nerd:    "",
		plain:   "*",
		kaomoji: "☆",
		squares: "★",
	},
	Calendar: {
		emoji:   "📅",
		nerd:    "",
		plain:   "@",
		kaomoji: "(´・ω・`)",
		squares: "🟦",
	},
	Clock: {
		emoji:   "🕒",
		nerd:    "",
		plain:   "~",
		kaomoji: "(￣ー￣)",
		squares: "⬜",
	},
	Film: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "[M]",
		kaomoji: "(⌐■_■)",
		squares: "🟥",
	},
	TV: {
		emoji:   "📺",
		nerd:    "",
		plain:   "[TV]",
		kaomoji: "[̲̅$̲̅(̲̅ ͡° ͜ʖ ͡°̲̅)̲̅$̲̅]",
		squares: "🟪",
	},
	Check: {
		emoji:   "✅",
		nerd:    "",
		plain:   "v",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Plus: {
		emoji:   "➕",
		nerd:    "",
		plain:   "+",
		kaomoji: "(＋＿＋)",
		squares: "⬛",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⊙_◎)",
		squares: "🟧",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟥",
	},
	Mark: {
		emoji:   "▪️",
		nerd:    "",
		plain:   "-",
		kaomoji: "・",
		squares: "▪",
	},
}
