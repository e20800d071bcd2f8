package httpserver

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
	"github.com/Dinesh-rish/Career-Insight/pkg/textx"
)

type likertAnswerRequest struct {
	QuestionID int `json:"questionId" validate:"required,gt=0"`
	Score      int `json:"score" validate:"min=1,max=5"`
}

// analysisRequest is the POST /v1/analysis body. Size caps live in the tags.
type analysisRequest struct {
	Stage        string                `json:"stage" validate:"required,max=64"`
	Answers      []likertAnswerRequest `json:"answers" validate:"max=50,unique=QuestionID,dive"`
	StageAnswers map[string]string     `json:"stageAnswers" validate:"max=64,dive,keys,required,max=64,endkeys,max=2000"`
}

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validationDetails flattens validator errors into field -> failed tag.
func validationDetails(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, fe := range ve {
		field := fe.Namespace()
		// drop the struct name
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out[field] = fe.Tag()
	}
	return out
}

// toUserContext checks req against the question bank and converts it.
// The returned map holds per-field failures when the request is rejected.
func toUserContext(req analysisRequest, bank Questions) (domain.UserContext, map[string]string, error) {
	details := map[string]string{}

	stage, ok := domain.ParseStage(req.Stage)
	if !ok {
		details["stage"] = "oneof"
		return domain.UserContext{}, details, fmt.Errorf("%w: unknown stage %q", domain.ErrInvalidArgument, req.Stage)
	}

	known := bank.LikertIDs()
	answers := make([]domain.LikertAnswer, 0, len(req.Answers))
	for i, a := range req.Answers {
		if _, ok := known[a.QuestionID]; !ok {
			details[fmt.Sprintf("answers[%d].questionId", i)] = "unknown"
			continue
		}
		answers = append(answers, domain.LikertAnswer{QuestionID: a.QuestionID, Score: a.Score})
	}

	stageAnswers := make(map[string]string, len(req.StageAnswers))
	keys := make([]string, 0, len(req.StageAnswers))
	for k := range req.StageAnswers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !bank.HasStageQuestion(stage, k) {
			details["stageAnswers["+k+"]"] = "unknown"
			continue
		}
		stageAnswers[k] = textx.StripControl(req.StageAnswers[k])
	}

	if len(details) > 0 {
		return domain.UserContext{}, details, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument)
	}
	return domain.UserContext{Stage: stage, Answers: answers, StageAnswers: stageAnswers}, nil, nil
}
