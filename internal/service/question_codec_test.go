package service

import (
	"strings"
	"testing"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/crypto"
)

const codecTestKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func newTestCodec(t *testing.T) *QuestionCodec {
	t.Helper()
	cipher, err := crypto.New(codecTestKey)
	if err != nil {
		t.Fatalf("crypto.New: %v", err)
	}
	return NewQuestionCodec(cipher)
}

func sampleQuestions() []model.Question {
	return []model.Question{
		{
			UUIDBase:      model.UUIDBase{ID: "q-1"},
			QuestionText:  "What is the capital of France?",
			AnswerOptions: model.StringArray{"London", "Paris", "Berlin"},
			CorrectAnswer: "Paris",
			Order:         0,
		},
		{
			UUIDBase:      model.UUIDBase{ID: "q-2"},
			QuestionText:  "2 + 2 = ?",
			AnswerOptions: model.StringArray{"3", "4"},
			CorrectAnswer: "4",
			Order:         1,
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	plain := sampleQuestions()

	encoded, err := codec.EncodeQuestions(plain)
	if err != nil {
		t.Fatalf("EncodeQuestions: %v", err)
	}
	if len(encoded) != len(plain) {
		t.Fatalf("encoded count = %d, want %d", len(encoded), len(plain))
	}

	decoded := codec.DecodeQuestions(encoded)
	if len(decoded) != len(plain) {
		t.Fatalf("decoded count = %d, want %d", len(decoded), len(plain))
	}

	for i := range plain {
		if decoded[i].ID != plain[i].ID {
			t.Errorf("question %d id = %q, want %q", i, decoded[i].ID, plain[i].ID)
		}
		if decoded[i].QuestionText != plain[i].QuestionText {
			t.Errorf("question %d text = %q, want %q", i, decoded[i].QuestionText, plain[i].QuestionText)
		}
		if decoded[i].CorrectAnswer != plain[i].CorrectAnswer {
			t.Errorf("question %d answer = %q, want %q", i, decoded[i].CorrectAnswer, plain[i].CorrectAnswer)
		}
		if len(decoded[i].AnswerOptions) != len(plain[i].AnswerOptions) {
			t.Fatalf("question %d option count = %d, want %d", i, len(decoded[i].AnswerOptions), len(plain[i].AnswerOptions))
		}
		for j := range plain[i].AnswerOptions {
			if decoded[i].AnswerOptions[j] != plain[i].AnswerOptions[j] {
				t.Errorf("question %d option %d = %q, want %q", i, j, decoded[i].AnswerOptions[j], plain[i].AnswerOptions[j])
			}
		}
	}
}

func TestEncodeQuestionsEncryptsEveryField(t *testing.T) {
	codec := newTestCodec(t)
	plain := sampleQuestions()

	encoded, err := codec.EncodeQuestions(plain)
	if err != nil {
		t.Fatalf("EncodeQuestions: %v", err)
	}

	for i, q := range encoded {
		if q.QuestionText == plain[i].QuestionText || !strings.Contains(q.QuestionText, ":") {
			t.Errorf("question %d text is not encrypted: %q", i, q.QuestionText)
		}
		if q.CorrectAnswer == plain[i].CorrectAnswer || !strings.Contains(q.CorrectAnswer, ":") {
			t.Errorf("question %d answer is not encrypted: %q", i, q.CorrectAnswer)
		}
		for j, opt := range q.AnswerOptions {
			if opt == plain[i].AnswerOptions[j] || !strings.Contains(opt, ":") {
				t.Errorf("question %d option %d is not encrypted: %q", i, j, opt)
			}
		}
		if q.ID != plain[i].ID {
			t.Errorf("question %d id changed during encoding: %q", i, q.ID)
		}
	}
}

// 加密功能上线前写入的明文记录必须能原样读出来，
// 哪怕同一条记录里混着加密字段和明文字段
func TestDecodeQuestionsLegacyPlaintextFallback(t *testing.T) {
	codec := newTestCodec(t)

	encryptedText, err := codec.Cipher.EncryptField("Which planet is red?")
	if err != nil {
		t.Fatal(err)
	}
	encryptedOption, err := codec.Cipher.EncryptField("Mars")
	if err != nil {
		t.Fatal(err)
	}

	mixed := []model.Question{
		{
			UUIDBase:      model.UUIDBase{ID: "legacy-1"},
			QuestionText:  "Fully legacy plaintext question?",
			AnswerOptions: model.StringArray{"yes", "no"},
			CorrectAnswer: "yes",
		},
		{
			UUIDBase:      model.UUIDBase{ID: "partial-1"},
			QuestionText:  encryptedText,
			AnswerOptions: model.StringArray{encryptedOption, "Venus"},
			CorrectAnswer: "Mars",
		},
	}

	decoded := codec.DecodeQuestions(mixed)

	if decoded[0].QuestionText != "Fully legacy plaintext question?" {
		t.Errorf("legacy text = %q", decoded[0].QuestionText)
	}
	if decoded[0].AnswerOptions[0] != "yes" || decoded[0].AnswerOptions[1] != "no" {
		t.Errorf("legacy options = %v", decoded[0].AnswerOptions)
	}
	if decoded[0].CorrectAnswer != "yes" {
		t.Errorf("legacy answer = %q", decoded[0].CorrectAnswer)
	}

	if decoded[1].QuestionText != "Which planet is red?" {
		t.Errorf("mixed text = %q", decoded[1].QuestionText)
	}
	if decoded[1].AnswerOptions[0] != "Mars" {
		t.Errorf("mixed encrypted option = %q", decoded[1].AnswerOptions[0])
	}
	if decoded[1].AnswerOptions[1] != "Venus" {
		t.Errorf("mixed plaintext option = %q", decoded[1].AnswerOptions[1])
	}
	if decoded[1].CorrectAnswer != "Mars" {
		t.Errorf("mixed answer = %q", decoded[1].CorrectAnswer)
	}
}

func TestEncodeQuestionsPreservesOrderAndCount(t *testing.T) {
	codec := newTestCodec(t)

	questions := make([]model.Question, 10)
	for i := range questions {
		questions[i] = model.Question{
			UUIDBase:      model.UUIDBase{ID: string(rune('a' + i))},
			QuestionText:  "text",
			AnswerOptions: model.StringArray{"one", "two", "three"},
			CorrectAnswer: "two",
			Order:         i,
		}
	}

	encoded, err := codec.EncodeQuestions(questions)
	if err != nil {
		t.Fatal(err)
	}
	if len(encoded) != 10 {
		t.Fatalf("count = %d, want 10", len(encoded))
	}
	for i, q := range encoded {
		if q.Order != i {
			t.Errorf("question %d order = %d", i, q.Order)
		}
		if len(q.AnswerOptions) != 3 {
			t.Errorf("question %d option count = %d, want 3", i, len(q.AnswerOptions))
		}
	}
}
