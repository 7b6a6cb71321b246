package service

import (
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/crypto"
)

// QuestionCodec 负责题目内容在明文（接口/判分视图）和密文（落库形态）
// 之间的转换。题干、每个选项、正确答案逐字段加密，ID不加密
type QuestionCodec struct {
	Cipher *crypto.FieldCipher
}

func NewQuestionCodec(cipher *crypto.FieldCipher) *QuestionCodec {
	return &QuestionCodec{Cipher: cipher}
}

// EncodeQuestions 返回加密后的题目副本，顺序和数量与输入一致
func (c *QuestionCodec) EncodeQuestions(questions []model.Question) ([]model.Question, error) {
	encoded := make([]model.Question, len(questions))
	for i, q := range questions {
		text, err := c.Cipher.EncryptField(q.QuestionText)
		if err != nil {
			return nil, err
		}
		options := make(model.StringArray, len(q.AnswerOptions))
		for j, opt := range q.AnswerOptions {
			enc, err := c.Cipher.EncryptField(opt)
			if err != nil {
				return nil, err
			}
			options[j] = enc
		}
		answer, err := c.Cipher.EncryptField(q.CorrectAnswer)
		if err != nil {
			return nil, err
		}

		encoded[i] = q
		encoded[i].QuestionText = text
		encoded[i].AnswerOptions = options
		encoded[i].CorrectAnswer = answer
	}
	return encoded, nil
}

// DecodeQuestions 返回解密后的题目副本。单个字段解不开就原样返回该字段
// （兼容加密功能上线前写入的明文数据），所以这里不会失败
func (c *QuestionCodec) DecodeQuestions(questions []model.Question) []model.Question {
	decoded := make([]model.Question, len(questions))
	for i, q := range questions {
		options := make(model.StringArray, len(q.AnswerOptions))
		for j, opt := range q.AnswerOptions {
			options[j] = c.decodeField(opt).value
		}

		decoded[i] = q
		decoded[i].QuestionText = c.decodeField(q.QuestionText).value
		decoded[i].AnswerOptions = options
		decoded[i].CorrectAnswer = c.decodeField(q.CorrectAnswer).value
	}
	return decoded
}

// fieldResult 单字段的解密结果：解密成功，或者原样透传
type fieldResult struct {
	value     string
	decrypted bool
}

func (c *QuestionCodec) decodeField(stored string) fieldResult {
	plain, err := c.Cipher.DecryptField(stored)
	if err != nil {
		return fieldResult{value: stored}
	}
	return fieldResult{value: plain, decrypted: true}
}
