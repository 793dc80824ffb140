package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/logger"
	"github.com/fadilmartias/labour-intake/internal/metrics"
	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IntakeUsecase runs the two-step interview: Start opens a session with ten questions,
// Submit scores the answers, stores a profile and closes the session.
type IntakeUsecase struct {
	sessions   repository.SessionRepository
	profiles   repository.LabourProfileRepository
	classifier *intake.Classifier
	questions  *intake.QuestionGenerator
	extractor  *intake.ProfileExtractor
	evaluator  *intake.AnswerEvaluator
	resumes    *intake.ResumeWriter
	embedder   *intake.Embedder
	locks      *keyedMutex
	logger     *zap.Logger
}

// NewIntakeUsecase wires the intake components from opts. embedder may be nil.
func NewIntakeUsecase(sessions repository.SessionRepository, profiles repository.LabourProfileRepository, opts intake.Options, embedder *intake.Embedder) *IntakeUsecase {
	return &IntakeUsecase{
		sessions:   sessions,
		profiles:   profiles,
		classifier: intake.NewClassifier(opts),
		questions:  intake.NewQuestionGenerator(opts),
		extractor:  intake.NewProfileExtractor(opts),
		evaluator:  intake.NewAnswerEvaluator(opts),
		resumes:    intake.NewResumeWriter(opts),
		embedder:   embedder,
		locks:      newKeyedMutex(),
		logger:     logger.Component(opts.Logger, "intake_usecase"),
	}
}

func (uc *IntakeUsecase) Start(ctx context.Context, message string) (*model.ConversationSession, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &ValidationError{Fields: map[string]string{"message": "is required"}}
	}

	var (
		lang  intake.Language
		trade string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lang = uc.classifier.DetectLanguage(gctx, message)
		return nil
	})
	g.Go(func() error {
		trade = uc.classifier.ExtractTrade(gctx, message)
		return nil
	})
	_ = g.Wait()

	session := &model.ConversationSession{
		InitialMessage: message,
		Language:       string(lang),
		Trade:          trade,
		Questions:      pq.StringArray(uc.questions.Questions(ctx, trade, lang)),
		Answers:        pq.StringArray{},
		Status:         model.SessionStatusCollecting,
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	metrics.SessionsStarted.WithLabelValues(session.Language).Inc()
	uc.logger.Info("intake started",
		zap.String(logger.FieldSessionID, session.ID.String()),
		zap.String("language", session.Language),
		zap.String("trade", session.Trade),
	)
	return session, nil
}

type SubmitResult struct {
	Profile *model.LabourProfile
	Score   int
}

// Submit is rejected for a completed session. Submissions for one session are
// serialised; different sessions never wait on each other.
func (uc *IntakeUsecase) Submit(ctx context.Context, sessionID string, answers []string) (*SubmitResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, &ValidationError{Fields: map[string]string{"sessionId": "is required"}}
	}

	// uuid.Parse accepts several spellings of one id; lock on the canonical form
	uid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	unlock := uc.locks.Lock(uid.String())
	defer unlock()

	session, err := uc.sessions.FindByID(ctx, uid.String())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.Status == model.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	log := uc.logger.With(zap.String(logger.FieldSessionID, session.ID.String()))
	lang := intake.ParseLanguage(session.Language)
	aligned := session.AlignAnswers(answers)
	basicQuestions := session.BasicQuestions()
	basic := aligned[:len(basicQuestions)]
	work := aligned[len(basicQuestions):]

	draft := uc.extractor.Extract(ctx, session.InitialMessage, basicQuestions, answersText(basicQuestions, basic))
	trade := resolveTrade(draft, session)
	eval := uc.evaluator.Evaluate(ctx, trade, session.WorkQuestions(), work, lang)

	profile := buildProfile(session, aligned, draft, eval)
	uc.attachEmbedding(ctx, profile, log)

	if err := uc.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if err := session.Complete(aligned); err != nil {
		return nil, ErrSessionCompleted
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		log.Error("profile stored but session not closed", zap.String("profile_id", profile.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("complete session: %w", err)
	}

	metrics.ProfilesCreated.WithLabelValues(profile.Badge, profile.EvaluationSource).Inc()
	log.Info("intake completed",
		zap.String("profile_id", profile.ID.String()),
		zap.Int("total_score", profile.TotalScore),
		zap.String("badge", profile.Badge),
		zap.String("evaluation_source", profile.EvaluationSource),
	)
	return &SubmitResult{Profile: profile, Score: profile.TotalScore}, nil
}

func (uc *IntakeUsecase) attachEmbedding(ctx context.Context, profile *model.LabourProfile, log *zap.Logger) {
	vector := uc.embedder.Embed(ctx, profile.SearchText())
	switch {
	case vector == nil:
	case len(vector) != model.EmbeddingDimensions:
		log.Warn("embedding dimension mismatch, profile stored without it",
			zap.Int("got", len(vector)), zap.Int("want", model.EmbeddingDimensions))
	default:
		v := pgvector.NewVector(vector)
		profile.Embedding = &v
	}
}

// Interview writes a narrative resume from free-form question/answer pairs. It is
// independent of sessions and stores nothing.
func (uc *IntakeUsecase) Interview(ctx context.Context, language string, responses []intake.InterviewResponse) (intake.Resume, error) {
	fields := fieldErrors{}
	if strings.TrimSpace(language) == "" {
		fields["language"] = "is required"
	}
	if len(responses) == 0 {
		fields["responses"] = "must contain at least one answer"
	}
	if err := fields.err(); err != nil {
		return intake.Resume{}, err
	}
	return uc.resumes.Write(ctx, intake.ParseLanguage(language), responses), nil
}
