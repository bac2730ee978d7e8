package repositories

import (
	"consultbr_backend/internal/models"

	"gorm.io/gorm"
)

// EntrepreneurStats - агрегаты для панели предпринимателя
type EntrepreneurStats struct {
	ActiveProjects      int64   `json:"activeProjects"`
	TotalProjects       int64   `json:"totalProjects"`
	CompletedProjects   int64   `json:"completedProjects"`
	TotalProposals      int64   `json:"totalProposals"`
	FavoriteConsultants int64   `json:"favoriteConsultants"`
	TotalSpent          float64 `json:"totalSpent"`
}

// ConsultantStats - агрегаты для панели консультанта
type ConsultantStats struct {
	ActiveProjects    int64   `json:"activeProjects"`
	CompletedProjects int64   `json:"completedProjects"`
	SentProposals     int64   `json:"sentProposals"`
	AcceptedProposals int64   `json:"acceptedProposals"`
	TotalEarnings     float64 `json:"totalEarnings"`
	ProfileViews      int64   `json:"profileViews"`
}

// ProjectTotals - производные поля профиля (totalProjects, totalSpent/totalEarnings)
type ProjectTotals struct {
	OwnerID        string
	TotalProjects  int64
	CompletedSum   float64
	CompletedCount int64
}

type StatsRepository interface {
	EntrepreneurStats(db *gorm.DB, profileID, userID string) (*EntrepreneurStats, error)
	ConsultantStats(db *gorm.DB, profileID, userID string) (*ConsultantStats, error)
	EntrepreneurTotals(db *gorm.DB, profileID string) (*ProjectTotals, error)
	// ConsultantTotals считает агрегаты пачкой по id профилей
	ConsultantTotals(db *gorm.DB, profileIDs []string) (map[string]ProjectTotals, error)
}

type StatsRepositoryImpl struct{}

func NewStatsRepository() StatsRepository {
	return &StatsRepositoryImpl{}
}

func (r *StatsRepositoryImpl) EntrepreneurStats(db *gorm.DB, profileID, userID string) (*EntrepreneurStats, error) {
	var stats EntrepreneurStats

	err := db.Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status IN (?, ?))                 AS active_projects,
			COUNT(*)                                                 AS total_projects,
			COUNT(*) FILTER (WHERE status = ?)                       AS completed_projects,
			COALESCE(SUM(budget) FILTER (WHERE status = ?), 0)       AS total_spent
		FROM projects
		WHERE entrepreneur_id = ?`,
		models.ProjectStatusPublished, models.ProjectStatusInProgress,
		models.ProjectStatusCompleted,
		models.ProjectStatusCompleted,
		profileID,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(`
		SELECT COUNT(*)
		FROM proposals p
		JOIN projects pr ON pr.id = p.project_id
		WHERE pr.entrepreneur_id = ?`,
		profileID,
	).Scan(&stats.TotalProposals).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Favorite{}).
		Where("user_id = ? AND target_type = ?", userID, models.FavoriteTargetConsultant).
		Count(&stats.FavoriteConsultants).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *StatsRepositoryImpl) ConsultantStats(db *gorm.DB, profileID, userID string) (*ConsultantStats, error) {
	var stats ConsultantStats

	err := db.Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = ?)                 AS active_projects,
			COUNT(*) FILTER (WHERE status = ?)                 AS completed_projects,
			COALESCE(SUM(budget) FILTER (WHERE status = ?), 0) AS total_earnings
		FROM projects
		WHERE consultant_id = ?`,
		models.ProjectStatusInProgress,
		models.ProjectStatusCompleted,
		models.ProjectStatusCompleted,
		profileID,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	var proposals struct {
		Sent     int64
		Accepted int64
	}
	err = db.Raw(`
		SELECT
			COUNT(*)                            AS sent,
			COUNT(*) FILTER (WHERE status = ?)  AS accepted
		FROM proposals
		WHERE sender_id = ?`,
		models.ProposalStatusAccepted, userID,
	).Scan(&proposals).Error
	if err != nil {
		return nil, err
	}
	stats.SentProposals = proposals.Sent
	stats.AcceptedProposals = proposals.Accepted

	err = db.Raw(`SELECT COALESCE(profile_views, 0) FROM consultant_profiles WHERE id = ?`, profileID).
		Scan(&stats.ProfileViews).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *StatsRepositoryImpl) EntrepreneurTotals(db *gorm.DB, profileID string) (*ProjectTotals, error) {
	totals := ProjectTotals{OwnerID: profileID}
	err := db.Raw(`
		SELECT
			COUNT(*)                                           AS total_projects,
			COUNT(*) FILTER (WHERE status = ?)                 AS completed_count,
			COALESCE(SUM(budget) FILTER (WHERE status = ?), 0) AS completed_sum
		FROM projects
		WHERE entrepreneur_id = ?`,
		models.ProjectStatusCompleted, models.ProjectStatusCompleted, profileID,
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	totals.OwnerID = profileID
	return &totals, nil
}

func (r *StatsRepositoryImpl) ConsultantTotals(db *gorm.DB, profileIDs []string) (map[string]ProjectTotals, error) {
	result := make(map[string]ProjectTotals, len(profileIDs))
	if len(profileIDs) == 0 {
		return result, nil
	}

	var rows []ProjectTotals
	err := db.Raw(`
		SELECT
			consultant_id                                      AS owner_id,
			COUNT(*)                                           AS total_projects,
			COUNT(*) FILTER (WHERE status = ?)                 AS completed_count,
			COALESCE(SUM(budget) FILTER (WHERE status = ?), 0) AS completed_sum
		FROM projects
		WHERE consultant_id IN ?
		GROUP BY consultant_id`,
		models.ProjectStatusCompleted, models.ProjectStatusCompleted, profileIDs,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.OwnerID] = row
	}
	return result, nil
}
