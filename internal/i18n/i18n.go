// Package i18n holds the UI string tables for the supported languages.
package i18n

import (
	"time"

	"mandalart-cli/internal/model"
)

type Key string

const (
	Branch          Key = "branch"
	Completed       Key = "completed"
	FirstHalf       Key = "firstHalf"
	SecondHalf      Key = "secondHalf"
	Focus           Key = "focus"
	GoalDetails     Key = "goalDetails"
	Instruction     Key = "instruction"
	Language        Key = "language"
	MainGrid        Key = "mainGrid"
	MarkAsDone      Key = "markAsDone"
	NoHistory       Key = "noHistory"
	Notes           Key = "notes"
	Overview        Key = "overview"
	PickPalette     Key = "pickPalette"
	PlaceholderGoal Key = "placeholderGoal"
	PlaceholderNote Key = "placeholderNotes"
	SaveEntry       Key = "saveEntry"
	SubTask         Key = "subTask"
	TheGoal         Key = "theGoal"
	Theme           Key = "theme"
	Timeline        Key = "timeline"
	ZoomView        Key = "zoomView"
	AddDetail       Key = "addDetail"
	EnterDetail     Key = "enterDetail"
	Keywords        Key = "keywords"
	Progress        Key = "progress"
	Copied          Key = "copied"
	Year            Key = "year"
)

var tables = map[model.Language]map[Key]string{
	model.LanguageKorean: {
		Branch:          "세부 목표",
		Completed:       "완료",
		FirstHalf:       "상반기",
		SecondHalf:      "하반기",
		Focus:           "핵심 목표",
		GoalDetails:     "목표 상세",
		Instruction:     "칸을 선택해 목표를 적고, 카테고리로 들어가 세부 계획을 세우세요.",
		Language:        "언어",
		MainGrid:        "메인 그리드",
		MarkAsDone:      "완료로 표시",
		NoHistory:       "아직 완료한 목표가 없습니다.",
		Notes:           "메모",
		Overview:        "전체 보기",
		PickPalette:     "테마 선택",
		PlaceholderGoal: "목표를 입력하세요",
		PlaceholderNote: "메모를 입력하세요",
		SaveEntry:       "저장",
		SubTask:         "세부 항목",
		TheGoal:         "목표",
		Theme:           "테마",
		Timeline:        "타임라인",
		ZoomView:        "확대 보기",
		AddDetail:       "상세 일정 추가하기",
		EnterDetail:     "세부 내용을 입력하세요",
		Keywords:        "추천 키워드",
		Progress:        "진행률",
		Copied:          "복사했습니다",
		Year:            "연도",
	},
	model.LanguageEnglish: {
		Branch:          "Branch",
		Completed:       "Completed",
		FirstHalf:       "First Half",
		SecondHalf:      "Second Half",
		Focus:           "Focus",
		GoalDetails:     "Goal Details",
		Instruction:     "Pick a cell to write a goal, then open a category to plan its tasks.",
		Language:        "Language",
		MainGrid:        "Main Grid",
		MarkAsDone:      "Mark as done",
		NoHistory:       "No completed goals yet.",
		Notes:           "Notes",
		Overview:        "Overview",
		PickPalette:     "Pick a palette",
		PlaceholderGoal: "Enter a goal",
		PlaceholderNote: "Add some notes",
		SaveEntry:       "Save",
		SubTask:         "Sub-task",
		TheGoal:         "The goal",
		Theme:           "Theme",
		Timeline:        "Timeline",
		ZoomView:        "Zoom view",
		AddDetail:       "Add Detail",
		EnterDetail:     "Enter detail",
		Keywords:        "Suggested keywords",
		Progress:        "Progress",
		Copied:          "Copied",
		Year:            "Year",
	},
	model.LanguageJapanese: {
		Branch:          "サブ目標",
		Completed:       "完了",
		FirstHalf:       "上半期",
		SecondHalf:      "下半期",
		Focus:           "中心目標",
		GoalDetails:     "目標の詳細",
		Instruction:     "マスを選んで目標を書き、カテゴリを開いて計画を立てましょう。",
		Language:        "言語",
		MainGrid:        "メイングリッド",
		MarkAsDone:      "完了にする",
		NoHistory:       "完了した目標はまだありません。",
		Notes:           "メモ",
		Overview:        "全体表示",
		PickPalette:     "テーマを選択",
		PlaceholderGoal: "目標を入力",
		PlaceholderNote: "メモを入力",
		SaveEntry:       "保存",
		SubTask:         "詳細項目",
		TheGoal:         "目標",
		Theme:           "テーマ",
		Timeline:        "タイムライン",
		ZoomView:        "拡大表示",
		AddDetail:       "詳細を追加",
		EnterDetail:     "詳細を入力",
		Keywords:        "おすすめキーワード",
		Progress:        "進捗",
		Copied:          "コピーしました",
		Year:            "年",
	},
}

var months = map[model.Language][12]string{
	model.LanguageKorean:   {"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
	model.LanguageEnglish:  {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	model.LanguageJapanese: {"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
}

// T looks up key in lang, falling back to English and then to the key itself.
func T(lang model.Language, key Key) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[model.LanguageEnglish][key]; ok {
		return s
	}
	return string(key)
}

func Month(lang model.Language, m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	names, ok := months[lang]
	if !ok {
		names = months[model.LanguageEnglish]
	}
	return names[m-1]
}
