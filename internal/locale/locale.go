package locale

// Lang is a supported interface language tag.
type Lang string

const (
	Uz Lang = "uz"
	Ru Lang = "ru"
	En Lang = "en"
)

// DefaultLang is used before anything better is known, e.g. when a
// store error prevents loading the user's preference.
const DefaultLang = Uz

var Supported = []Lang{Uz, Ru, En}

// LanguagePrompt is intentionally not per-language: it is shown before
// the user has chosen one.
const LanguagePrompt = "Tilni tanlang / Выберите язык / Choose your language:"

var LanguageNames = map[Lang]string{
	Uz: "🇺🇿 O'zbekcha",
	Ru: "🇷🇺 Русский",
	En: "🇬🇧 English",
}

// Strings holds every user-facing phrase for one language. Fields
// ending in a format verb are fmt.Sprintf templates; amounts are
// pre-formatted with FormatAmount before substitution.
type Strings struct {
	Greeting     string // %s: first name
	MainMenu     string
	ChooseAction string

	BtnAddExpense   string
	BtnAddIncome    string
	BtnBalance      string
	BtnReport       string
	BtnSetLimit     string
	BtnReset        string
	BtnLanguage     string
	BtnBack         string
	BtnWeek         string
	BtnMonth        string
	BtnConfirmReset string

	ExpenseStarted string
	IncomeStarted  string
	LimitStarted   string

	AskExpenseName  string
	AskIncomeSource string
	AskAmount       string
	AskCategory     string
	AskLimit        string

	Cancelled      string
	CancelledAll   string
	BadAmount      string
	UnknownCategory string

	ExpenseAdded string // %s: name, %s: amount, %s: category
	IncomeAdded  string // %s: source, %s: amount
	LimitSet     string // %s: amount
	LimitWarning string // %s: limit, %s: spent, %s: excess

	ComputingBalance string
	BalanceText      string // %s: income, %s: expense, %s: balance

	ChoosePeriod      string
	PreparingReport   string
	ReportHeaderWeek  string
	ReportHeaderMonth string
	ReportCategories  string
	ReportNoExpenses  string
	ReportTotals      string // %s: income, %s: expense, %s: net

	ConfirmResetText string
	ResetDone        string

	SessionExpired string
	SomethingWrong string
	DontUnderstand string
}

// T returns the string table for a language, falling back to the
// default when the tag is unknown or empty.
func T(lang Lang) Strings {
	if s, ok := table[lang]; ok {
		return s
	}
	return table[DefaultLang]
}

var table = map[Lang]Strings{
	Uz: {
		Greeting:     "Assalomu alaykum, %s! Shaxsiy moliya botiga xush kelibsiz!\n\nQuyidagi amallardan birini tanlang:",
		MainMenu:     "Asosiy menyu. Quyidagi amallardan birini tanlang:",
		ChooseAction: "Quyidagi amallardan birini tanlang:",

		BtnAddExpense:   "💸 Xarajat qo'shish",
		BtnAddIncome:    "💰 Daromad qo'shish",
		BtnBalance:      "📊 Balansni ko'rish",
		BtnReport:       "📈 Hisobot",
		BtnSetLimit:     "🚦 Oylik limit",
		BtnReset:        "🗑 Balansni tozalash",
		BtnLanguage:     "🌐 Til",
		BtnBack:         "⬅️ Orqaga",
		BtnWeek:         "Haftalik",
		BtnMonth:        "Oylik",
		BtnConfirmReset: "✅ Ha, tozalansin",

		ExpenseStarted: "💸 Xarajat qo'shish jarayoni boshlandi...",
		IncomeStarted:  "💰 Daromad qo'shish jarayoni boshlandi...",
		LimitStarted:   "🚦 Oylik limit o'rnatish boshlandi...",

		AskExpenseName:  "Xarajat nomini kiriting (yoki jarayonni bekor qilish uchun /cancel deb yozing):",
		AskIncomeSource: "Daromad manbasini kiriting (yoki jarayonni bekor qilish uchun /cancel deb yozing):",
		AskAmount:       "Summasini kiriting (faqat raqam):",
		AskCategory:     "Kategoriyani tanlang:",
		AskLimit:        "Oylik limit summasini kiriting (faqat raqam):",

		Cancelled:       "Jarayon bekor qilindi.",
		CancelledAll:    "Barcha amallar bekor qilindi. Bosh menyuga qaytish uchun /start bosing.",
		BadAmount:       "Noto'g'ri summa kiritildi. Jarayon bekor qilindi.",
		UnknownCategory: "Bunday kategoriya yo'q. Jarayon bekor qilindi.",

		ExpenseAdded: "✅ \"%s\" nomli %s xarajat \"%s\" kategoriyasiga qo'shildi.",
		IncomeAdded:  "✅ \"%s\" manbasidan %s daromad qo'shildi.",
		LimitSet:     "✅ Oylik limit %s qilib o'rnatildi.",
		LimitWarning: "⚠️ Oylik limitdan oshib ketdingiz!\nLimit: %s\nXarajatlar: %s\nOshgan summa: %s",

		ComputingBalance: "⏳ Balans hisoblanmoqda...",
		BalanceText:      "📊 Umumiy Balans\n\n⬆️ Umumiy daromad: %s\n⬇️ Umumiy xarajat: %s\n\n💰 Sof balans: %s",

		ChoosePeriod:      "Qaysi davr uchun hisobot kerak?",
		PreparingReport:   "⏳ Hisobot tayyorlanmoqda...",
		ReportHeaderWeek:  "📈 Haftalik Hisobot",
		ReportHeaderMonth: "📈 Oylik Hisobot",
		ReportCategories:  "Xarajatlar kategoriyalar bo'yicha:",
		ReportNoExpenses:  "Bu davrda xarajatlar bo'lmagan.",
		ReportTotals:      "⬆️ Umumiy daromad: %s\n⬇️ Umumiy xarajat: %s\n💰 Sof balans: %s",

		ConfirmResetText: "Barcha daromad va xarajatlar o'chiriladi. Davom etamizmi?",
		ResetDone:        "🗑 Balans tozalandi.",

		SessionExpired: "⏱ Jarayon uzoq kutilgani uchun bekor qilindi. Davom etish uchun /start bosing.",
		SomethingWrong: "Xatolik yuz berdi. Birozdan so'ng qayta urinib ko'ring.",
		DontUnderstand: "Tushunmadim. Bosh menyu uchun /start bosing.",
	},
	Ru: {
		Greeting:     "Здравствуйте, %s! Добро пожаловать в бот личных финансов!\n\nВыберите одно из действий:",
		MainMenu:     "Главное меню. Выберите одно из действий:",
		ChooseAction: "Выберите одно из действий:",

		BtnAddExpense:   "💸 Добавить расход",
		BtnAddIncome:    "💰 Добавить доход",
		BtnBalance:      "📊 Показать баланс",
		BtnReport:       "📈 Отчёт",
		BtnSetLimit:     "🚦 Месячный лимит",
		BtnReset:        "🗑 Очистить баланс",
		BtnLanguage:     "🌐 Язык",
		BtnBack:         "⬅️ Назад",
		BtnWeek:         "За неделю",
		BtnMonth:        "За месяц",
		BtnConfirmReset: "✅ Да, очистить",

		ExpenseStarted: "💸 Добавление расхода начато...",
		IncomeStarted:  "💰 Добавление дохода начато...",
		LimitStarted:   "🚦 Установка месячного лимита начата...",

		AskExpenseName:  "Введите название расхода (или /cancel для отмены):",
		AskIncomeSource: "Введите источник дохода (или /cancel для отмены):",
		AskAmount:       "Введите сумму (только число):",
		AskCategory:     "Выберите категорию:",
		AskLimit:        "Введите сумму месячного лимита (только число):",

		Cancelled:       "Действие отменено.",
		CancelledAll:    "Все действия отменены. Нажмите /start для возврата в меню.",
		BadAmount:       "Введена некорректная сумма. Действие отменено.",
		UnknownCategory: "Такой категории нет. Действие отменено.",

		ExpenseAdded: "✅ Расход \"%s\" на %s добавлен в категорию \"%s\".",
		IncomeAdded:  "✅ Доход из источника \"%s\" на %s добавлен.",
		LimitSet:     "✅ Месячный лимит установлен: %s.",
		LimitWarning: "⚠️ Месячный лимит превышен!\nЛимит: %s\nРасходы: %s\nПревышение: %s",

		ComputingBalance: "⏳ Считаем баланс...",
		BalanceText:      "📊 Общий баланс\n\n⬆️ Общий доход: %s\n⬇️ Общий расход: %s\n\n💰 Чистый баланс: %s",

		ChoosePeriod:      "За какой период нужен отчёт?",
		PreparingReport:   "⏳ Готовим отчёт...",
		ReportHeaderWeek:  "📈 Отчёт за неделю",
		ReportHeaderMonth: "📈 Отчёт за месяц",
		ReportCategories:  "Расходы по категориям:",
		ReportNoExpenses:  "За этот период расходов не было.",
		ReportTotals:      "⬆️ Общий доход: %s\n⬇️ Общий расход: %s\n💰 Чистый баланс: %s",

		ConfirmResetText: "Все доходы и расходы будут удалены. Продолжить?",
		ResetDone:        "🗑 Баланс очищен.",

		SessionExpired: "⏱ Действие отменено из-за долгого ожидания. Нажмите /start, чтобы продолжить.",
		SomethingWrong: "Произошла ошибка. Попробуйте позже.",
		DontUnderstand: "Не понимаю. Нажмите /start для главного меню.",
	},
	En: {
		Greeting:     "Hello, %s! Welcome to the personal finance bot!\n\nChoose one of the actions below:",
		MainMenu:     "Main menu. Choose one of the actions below:",
		ChooseAction: "Choose one of the actions below:",

		BtnAddExpense:   "💸 Add expense",
		BtnAddIncome:    "💰 Add income",
		BtnBalance:      "📊 Show balance",
		BtnReport:       "📈 Report",
		BtnSetLimit:     "🚦 Monthly limit",
		BtnReset:        "🗑 Reset balance",
		BtnLanguage:     "🌐 Language",
		BtnBack:         "⬅️ Back",
		BtnWeek:         "Weekly",
		BtnMonth:        "Monthly",
		BtnConfirmReset: "✅ Yes, reset",

		ExpenseStarted: "💸 Adding an expense...",
		IncomeStarted:  "💰 Adding an income...",
		LimitStarted:   "🚦 Setting the monthly limit...",

		AskExpenseName:  "Enter the expense name (or /cancel to abort):",
		AskIncomeSource: "Enter the income source (or /cancel to abort):",
		AskAmount:       "Enter the amount (numbers only):",
		AskCategory:     "Choose a category:",
		AskLimit:        "Enter the monthly limit amount (numbers only):",

		Cancelled:       "Action cancelled.",
		CancelledAll:    "All actions cancelled. Press /start to get back to the menu.",
		BadAmount:       "That amount is not valid. Action cancelled.",
		UnknownCategory: "There is no such category. Action cancelled.",

		ExpenseAdded: "✅ Expense \"%s\" of %s added to the \"%s\" category.",
		IncomeAdded:  "✅ Income from \"%s\" of %s added.",
		LimitSet:     "✅ Monthly limit set to %s.",
		LimitWarning: "⚠️ You are over your monthly limit!\nLimit: %s\nSpent: %s\nOver by: %s",

		ComputingBalance: "⏳ Computing the balance...",
		BalanceText:      "📊 Overall Balance\n\n⬆️ Total income: %s\n⬇️ Total expenses: %s\n\n💰 Net balance: %s",

		ChoosePeriod:      "Which period do you want a report for?",
		PreparingReport:   "⏳ Preparing the report...",
		ReportHeaderWeek:  "📈 Weekly Report",
		ReportHeaderMonth: "📈 Monthly Report",
		ReportCategories:  "Expenses by category:",
		ReportNoExpenses:  "No expenses in this period.",
		ReportTotals:      "⬆️ Total income: %s\n⬇️ Total expenses: %s\n💰 Net balance: %s",

		ConfirmResetText: "All incomes and expenses will be deleted. Continue?",
		ResetDone:        "🗑 Balance reset.",

		SessionExpired: "⏱ The action was cancelled after waiting too long. Press /start to continue.",
		SomethingWrong: "Something went wrong. Please try again later.",
		DontUnderstand: "I don't understand. Press /start for the main menu.",
	},
}
