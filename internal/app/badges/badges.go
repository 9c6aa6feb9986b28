// Package badges implements the mission/badge evaluator. Badges are
// defined declaratively as predicates over an aggregate UserStats
// snapshot; evaluation recomputes eligibility from scratch every time and
// is therefore idempotent. Granting is the caller's decision — the
// evaluator only reports which badges the current statistics satisfy.
package badges

import (
	"time"

	"github.com/meu-mundo/meumundo/internal/app/history"
	"github.com/meu-mundo/meumundo/internal/domain"
	"github.com/meu-mundo/meumundo/internal/infra/sqlite"
)

// Evaluator recomputes badge eligibility from the persisted history.
type Evaluator struct {
	db          *sqlite.DB
	analyzer    *history.Analyzer
	definitions []domain.BadgeDef
}

// NewEvaluator creates an evaluator with the full badge catalog.
func NewEvaluator(db *sqlite.DB, analyzer *history.Analyzer) *Evaluator {
	return &Evaluator{
		db:          db,
		analyzer:    analyzer,
		definitions: AllBadges(),
	}
}

// Evaluate returns the full set of badge ids the user's current
// statistics satisfy, independent of what was previously recorded.
// Calling it twice with no new activity yields the identical set.
func (e *Evaluator) Evaluate(userID string, profile domain.Profile, now time.Time) (map[string]bool, error) {
	stats, err := e.analyzer.Stats(userID, profile, now)
	if err != nil {
		return nil, err
	}

	eligible := make(map[string]bool)
	for _, def := range e.definitions {
		if def.Predicate != nil && def.Predicate(stats) {
			eligible[def.ID] = true
		}
	}
	return eligible, nil
}

// NewlyEligible diffs the eligible set against the persisted badge set
// and returns ids not yet granted. Badges are never revoked, so the
// persisted set only grows.
func (e *Evaluator) NewlyEligible(userID string, profile domain.Profile, now time.Time) ([]string, error) {
	eligible, err := e.Evaluate(userID, profile, now)
	if err != nil {
		return nil, err
	}
	earned, err := e.db.BadgeIDs(userID)
	if err != nil {
		return nil, err
	}

	var fresh []string
	for _, def := range e.definitions {
		if eligible[def.ID] && !earned[def.ID] {
			fresh = append(fresh, def.ID)
		}
	}
	return fresh, nil
}

// Definitions returns the full badge catalog (for display).
func (e *Evaluator) Definitions() []domain.BadgeDef {
	return e.definitions
}

// ─── Badge Catalog ──────────────────────────────────────────────────────────
// Stat-based predicates only. The avatar storyline badges carry avatar and
// chapter metadata so the UI can gate display order; the evaluator itself
// checks thresholds and nothing else.

// AllBadges returns the full badge catalog.
func AllBadges() []domain.BadgeDef {
	return []domain.BadgeDef{
		// ── Primeiros Passos ───────────────────────────────────────────
		{
			ID: "primeira_tarefa", Name: "Primeiro Passo", Category: domain.CatPrimeirosPassos,
			Icon: "🌱",
			Predicate: func(s domain.UserStats) bool { return s.TotalCompleted >= 1 },
		},
		{
			ID: "dez_tarefas", Name: "Pegando o Ritmo", Category: domain.CatPrimeirosPassos,
			Icon: "🚶",
			Predicate: func(s domain.UserStats) bool { return s.TotalCompleted >= 10 },
		},
		{
			ID: "cinquenta_tarefas", Name: "Disciplinado", Category: domain.CatPrimeirosPassos,
			Icon: "🏃",
			Predicate: func(s domain.UserStats) bool { return s.TotalCompleted >= 50 },
		},
		{
			ID: "cem_tarefas", Name: "Imparável", Category: domain.CatPrimeirosPassos,
			Icon: "🚀",
			Predicate: func(s domain.UserStats) bool { return s.TotalCompleted >= 100 },
		},
		{
			ID: "conectado", Name: "Conectado", Category: domain.CatPrimeirosPassos,
			Icon: "🔗",
			Predicate: func(s domain.UserStats) bool { return s.LinkedEvents >= 1 },
		},
		{
			ID: "arquivista", Name: "Arquivista", Category: domain.CatPrimeirosPassos,
			Icon: "📎",
			Predicate: func(s domain.UserStats) bool { return s.LinkedEvents >= 10 },
		},

		// ── Constância ─────────────────────────────────────────────────
		{
			ID: "semana_ativa", Name: "Semana Ativa", Category: domain.CatConstancia,
			Icon: "🔥",
			Predicate: func(s domain.UserStats) bool { return s.StreakDays >= 7 },
		},
		{
			ID: "mes_ativo", Name: "Mês de Ferro", Category: domain.CatConstancia,
			Icon: "💪",
			Predicate: func(s domain.UserStats) bool { return s.StreakDays >= 30 },
		},
		{
			ID: "trinta_dias", Name: "Trinta Dias de Mundo", Category: domain.CatConstancia,
			Icon: "📅",
			Predicate: func(s domain.UserStats) bool { return s.ActiveDays >= 30 },
		},
		{
			ID: "dia_produtivo", Name: "Dia Produtivo", Category: domain.CatConstancia,
			Icon: "⚡",
			Predicate: func(s domain.UserStats) bool { return s.MaxInOneDay >= 5 },
		},
		{
			ID: "maratona", Name: "Maratonista", Category: domain.CatConstancia,
			Icon: "🏅",
			Predicate: func(s domain.UserStats) bool { return s.MaxInOneDay >= 10 },
		},

		// ── Riqueza e Níveis ───────────────────────────────────────────
		{
			ID: "nivel_5", Name: "Aprendiz Graduado", Category: domain.CatRiqueza,
			Icon: "⭐",
			Predicate: func(s domain.UserStats) bool { return s.Level >= 5 },
		},
		{
			ID: "nivel_10", Name: "Estrela em Ascensão", Category: domain.CatRiqueza,
			Icon: "🌟",
			Predicate: func(s domain.UserStats) bool { return s.Level >= 10 },
		},
		{
			ID: "nivel_25", Name: "Veterano", Category: domain.CatRiqueza,
			Icon: "🎖️",
			Predicate: func(s domain.UserStats) bool { return s.Level >= 25 },
		},
		{
			ID: "nivel_50", Name: "Lenda do Mundo", Category: domain.CatRiqueza,
			Icon: "👑",
			Predicate: func(s domain.UserStats) bool { return s.Level >= 50 },
		},
		{
			ID: "rico", Name: "Primeiro Cofre", Category: domain.CatRiqueza,
			Icon: "💰",
			Predicate: func(s domain.UserStats) bool { return s.CoinsEver >= 1000 },
		},
		{
			ID: "magnata", Name: "Magnata", Category: domain.CatRiqueza,
			Icon: "🏦",
			Predicate: func(s domain.UserStats) bool { return s.CoinsEver >= 10000 },
		},

		// ── Pastas ─────────────────────────────────────────────────────
		{
			ID: "trabalhador", Name: "Trabalhador", Category: domain.CatPastas,
			Icon: "💼",
			Predicate: func(s domain.UserStats) bool { return s.CountOf(domain.ActivityTrabalho) >= 25 },
		},
		{
			ID: "estudioso", Name: "Estudioso", Category: domain.CatPastas,
			Icon: "📚",
			Predicate: func(s domain.UserStats) bool { return s.CountOf(domain.ActivityEstudos) >= 25 },
		},
		{
			ID: "aventureiro", Name: "Aventureiro", Category: domain.CatPastas,
			Icon: "🏖️",
			Predicate: func(s domain.UserStats) bool { return s.CountOf(domain.ActivityLazer) >= 25 },
		},
		{
			ID: "organizado", Name: "Organizado", Category: domain.CatPastas,
			Icon: "🗂️",
			Predicate: func(s domain.UserStats) bool { return s.CountOf(domain.ActivityTarefas) >= 25 },
		},
		{
			ID: "explorador_de_pastas", Name: "Explorador de Pastas", Category: domain.CatPastas,
			Icon: "🗃️",
			Predicate: func(s domain.UserStats) bool { return s.DistinctFolders >= 5 },
		},

		// ── Avatares (storyline) ───────────────────────────────────────
		// Each avatar has a three-mission arc. Display order is gated by
		// the UI; the predicates here are plain thresholds.
		{
			ID: "aprendiz_1", Name: "O Despertar", Category: domain.CatAvatares,
			Icon: "🐣", Avatar: "aprendiz", Chapter: 1,
			Predicate: func(s domain.UserStats) bool { return s.TotalCompleted >= 3 },
		},
		{
			ID: "aprendiz_2", Name: "Primeiros Hábitos", Category: domain.CatAvatares,
			Icon: "🐣", Avatar: "aprendiz", Chapter: 2,
			Predicate: func(s domain.UserStats) bool { return s.ActiveDays >= 3 },
		},
		{
			ID: "aprendiz_3", Name: "Fim do Começo", Category: domain.CatAvatares,
			Icon: "🐣", Avatar: "aprendiz", Chapter: 3,
			Predicate: func(s domain.UserStats) bool { return s.Level >= 3 },
		},
		{
			ID: "explorador_1", Name: "Novos Horizontes", Category: domain.CatAvatares,
			Icon: "🧭", Avatar: "explorador", Chapter: 1,
			Predicate: func(s domain.UserStats) bool { return s.TotalCompleted >= 20 },
		},
		{
			ID: "explorador_2", Name: "Trilha Constante", Category: domain.CatAvatares,
			Icon: "🧭", Avatar: "explorador", Chapter: 2,
			Predicate: func(s domain.UserStats) bool { return s.StreakDays >= 5 },
		},
		{
			ID: "explorador_3", Name: "Mapa Completo", Category: domain.CatAvatares,
			Icon: "🧭", Avatar: "explorador", Chapter: 3,
			Predicate: func(s domain.UserStats) bool { return s.Level >= 8 },
		},
		{
			ID: "guardiao_1", Name: "O Chamado", Category: domain.CatAvatares,
			Icon: "🛡️", Avatar: "guardiao", Chapter: 1,
			Predicate: func(s domain.UserStats) bool { return s.TotalCompleted >= 75 },
		},
		{
			ID: "guardiao_2", Name: "Vigília Longa", Category: domain.CatAvatares,
			Icon: "🛡️", Avatar: "guardiao", Chapter: 2,
			Predicate: func(s domain.UserStats) bool { return s.StreakDays >= 14 },
		},
		{
			ID: "guardiao_3", Name: "Guardião do Mundo", Category: domain.CatAvatares,
			Icon: "🛡️", Avatar: "guardiao", Chapter: 3,
			Predicate: func(s domain.UserStats) bool { return s.Level >= 15 },
		},
	}
}
