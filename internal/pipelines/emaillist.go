package pipelines

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sim-tools/simapps/internal/directory"
	"github.com/sim-tools/simapps/internal/filters"
	"github.com/sim-tools/simapps/internal/models"
)

// Minimal runs cap the amount of directory data pulled while debugging
// filter chains against a live service.
const (
	minimalGroupLimit  = 5
	minimalMemberLimit = 5
)

// EmailListOptions configures one email-list run.
type EmailListOptions struct {
	Service       string
	GroupFilters  []filters.GroupFilter
	DedupStrategy filters.DedupStrategy
	Institution   string
	DomainHint    string
	OutputPath    string
	CSVPath       string
	EmitStdout    bool
	MinimalRun    bool
	UniqueEmails  bool
	DryRun        bool
	DebugDir      string
}

// EmailRow is one selected member with its chosen address and the score
// breakdown that produced it.
type EmailRow struct {
	GroupID     string   `json:"group_id"`
	PersonID    string   `json:"person_id"`
	DisplayName string   `json:"display_name"`
	ChosenEmail string   `json:"chosen_email"`
	AllEmails   []string `json:"all_emails"`
	Reason      string   `json:"reason"`
}

// FilterTrace records the group names entering and leaving one filter.
type FilterTrace struct {
	Filter string   `json:"filter"`
	Before []string `json:"before"`
	After  []string `json:"after"`
}

// Preview summarizes a run for dry runs and result output.
type Preview struct {
	GroupsBefore    int        `json:"groups_before"`
	GroupsProcessed int        `json:"groups_processed"`
	GroupsAfter     int        `json:"groups_after"`
	UniqueMembers   int        `json:"unique_members"`
	Sample          []EmailRow `json:"sample"`
}

// Result is the outcome of an email-list run.
type Result struct {
	Rows         []EmailRow
	Preview      Preview
	EmailList    string
	StdoutOutput string
}

// emailListState is the shared state flowing through the pipeline steps.
// Field tags shape the per-step debug snapshots.
type emailListState struct {
	AllGroups    []models.Group             `json:"all_groups"`
	Groups       []models.Group             `json:"groups_before_filters"`
	Filtered     []models.Group             `json:"groups"`
	FilterTraces []FilterTrace              `json:"group_filter_details,omitempty"`
	Members      []models.Member            `json:"members"`
	Membership   map[string][]models.Member `json:"membership_map,omitempty"`
	Deduplicated []models.Member            `json:"deduplicated_members"`
	Users        map[string]*models.User    `json:"users,omitempty"`
	Rows         []EmailRow                 `json:"email_rows"`
	EmailList    string                     `json:"email_list"`
	Preview      Preview                    `json:"preview"`
}

// EmailListPipeline produces deduplicated email lists for directory groups.
type EmailListPipeline struct {
	client   directory.Client
	opts     EmailListOptions
	pipeline *Pipeline[emailListState]
	dedup    filters.MemberFilter
	logger   *logrus.Entry
}

// NewEmailListPipeline wires the pipeline steps. An unsupported dedup
// strategy is rejected here, before any directory calls happen.
func NewEmailListPipeline(client directory.Client, opts EmailListOptions) (*EmailListPipeline, error) {
	selector := func(member models.Member) models.EmailSelection {
		return filters.SelectBestEmail(member, nil, opts.Institution, opts.DomainHint)
	}

	dedup, err := filters.DeduplicateMembers(opts.DedupStrategy, selector)
	if err != nil {
		return nil, err
	}

	p := &EmailListPipeline{
		client:   client,
		opts:     opts,
		pipeline: New[emailListState]("email-list", opts.DebugDir),
		dedup:    dedup,
	}
	p.logger = p.pipeline.Logger()

	p.pipeline.AddStep("list-groups", p.listGroups)
	p.pipeline.AddStep("apply-group-filters", p.applyGroupFilters)
	p.pipeline.AddStep("load-members", p.loadMembers)
	p.pipeline.AddStep("deduplicate-members", p.deduplicateMembers)
	p.pipeline.AddStep("load-users", p.loadUsers)
	p.pipeline.AddStep("select-emails", p.selectEmails)
	p.pipeline.AddStep("write-outputs", p.writeOutputs)

	return p, nil
}

// Run executes the pipeline and returns the aggregated result.
func (p *EmailListPipeline) Run(ctx context.Context) (*Result, error) {
	var state emailListState
	if err := p.pipeline.Run(ctx, &state); err != nil {
		return nil, err
	}

	result := &Result{
		Rows:      state.Rows,
		Preview:   state.Preview,
		EmailList: state.EmailList,
	}
	if p.opts.EmitStdout || p.opts.DryRun {
		result.StdoutOutput = state.EmailList
	}
	return result, nil
}

func (p *EmailListPipeline) listGroups(ctx context.Context, state *emailListState) error {
	allGroups, err := p.client.ListGroups(ctx, p.opts.Service)
	if err != nil {
		return fmt.Errorf("failed to list groups for service %s: %w", p.opts.Service, err)
	}

	p.logger.WithFields(logrus.Fields{
		"service": p.opts.Service,
		"count":   len(allGroups),
	}).Info("Fetched groups")
	for _, group := range allGroups {
		p.logger.WithFields(logrus.Fields{
			"group": group.Name,
			"id":    group.ID,
		}).Debug("Listed group")
	}

	groups := allGroups
	if p.opts.MinimalRun && len(allGroups) > minimalGroupLimit {
		p.logger.WithFields(logrus.Fields{
			"limit": minimalGroupLimit,
			"total": len(allGroups),
		}).Info("Minimal run active: limiting downstream processing")
		groups = allGroups[:minimalGroupLimit]
	}

	state.AllGroups = allGroups
	state.Groups = groups
	return nil
}

func (p *EmailListPipeline) applyGroupFilters(_ context.Context, state *emailListState) error {
	universe := state.Groups
	filtered := universe
	for _, filter := range p.opts.GroupFilters {
		before := groupNames(filtered)
		filtered = filter.Apply(filtered, universe)
		after := groupNames(filtered)

		p.logger.WithFields(logrus.Fields{
			"filter": filter.Name,
			"before": len(before),
			"after":  len(after),
		}).Info("Applied group filter")

		state.FilterTraces = append(state.FilterTraces, FilterTrace{
			Filter: filter.Name,
			Before: before,
			After:  after,
		})
	}
	state.Filtered = filtered
	return nil
}

func (p *EmailListPipeline) loadMembers(ctx context.Context, state *emailListState) error {
	state.Membership = make(map[string][]models.Member, len(state.Filtered))
	for _, group := range state.Filtered {
		groupMembers, err := p.client.ListGroupMembers(ctx, group)
		if err != nil {
			return fmt.Errorf("failed to load members for group %s: %w", group.Name, err)
		}

		total := len(groupMembers)
		if p.opts.MinimalRun && total > minimalMemberLimit {
			p.logger.WithFields(logrus.Fields{
				"group": group.Name,
				"limit": minimalMemberLimit,
				"total": total,
			}).Info("Minimal run active: limiting members")
			groupMembers = groupMembers[:minimalMemberLimit]
		}

		p.logger.WithFields(logrus.Fields{
			"group":    group.Name,
			"members":  len(groupMembers),
			"original": total,
		}).Info("Loaded group members")

		state.Membership[group.Name] = groupMembers
		state.Members = append(state.Members, groupMembers...)
	}
	return nil
}

func (p *EmailListPipeline) deduplicateMembers(_ context.Context, state *emailListState) error {
	p.logger.WithFields(logrus.Fields{
		"strategy": p.opts.DedupStrategy,
		"members":  len(state.Members),
	}).Info("Running deduplication")

	deduplicated, err := p.dedup(state.Members)
	if err != nil {
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"members": len(deduplicated),
	}).Info("Deduplication complete")

	state.Deduplicated = deduplicated
	return nil
}

// loadUsers fetches the enrichment record once per distinct person. A
// failed lookup is not fatal; the scorer falls back to membership data.
func (p *EmailListPipeline) loadUsers(ctx context.Context, state *emailListState) error {
	state.Users = make(map[string]*models.User)
	for _, member := range state.Deduplicated {
		if _, loaded := state.Users[member.PersonID]; loaded {
			continue
		}
		user, err := p.client.GetUser(ctx, member.PersonID)
		if err != nil {
			p.logger.WithError(err).WithFields(logrus.Fields{
				"person_id": member.PersonID,
			}).Warn("Failed to load user, continuing without enrichment")
			state.Users[member.PersonID] = nil
			continue
		}
		state.Users[member.PersonID] = user
	}
	return nil
}

func (p *EmailListPipeline) selectEmails(_ context.Context, state *emailListState) error {
	for _, member := range state.Deduplicated {
		selection := filters.SelectBestEmail(
			member, state.Users[member.PersonID], p.opts.Institution, p.opts.DomainHint)

		p.logger.WithFields(logrus.Fields{
			"person_id": member.PersonID,
			"selected":  selection.SelectedEmail,
			"reason":    selection.Reason,
		}).Info("Selected email")

		state.Rows = append(state.Rows, EmailRow{
			GroupID:     member.GroupID,
			PersonID:    member.PersonID,
			DisplayName: member.DisplayName,
			ChosenEmail: selection.SelectedEmail,
			AllEmails:   selection.Candidates,
			Reason:      selection.Reason,
		})
	}
	return nil
}

func (p *EmailListPipeline) writeOutputs(_ context.Context, state *emailListState) error {
	emails := p.collectEmails(state.Rows)
	state.EmailList = strings.Join(emails, "; ")

	p.logger.WithFields(logrus.Fields{
		"addresses": len(emails),
		"unique":    p.opts.UniqueEmails,
	}).Info("Email list assembled")

	state.Preview = Preview{
		GroupsBefore:    len(state.AllGroups),
		GroupsProcessed: len(state.Groups),
		GroupsAfter:     len(state.Filtered),
		UniqueMembers:   len(state.Deduplicated),
		Sample:          sampleRows(state.Rows, 10),
	}

	if p.opts.DryRun {
		return nil
	}

	if len(p.opts.OutputPath) > 0 {
		if err := writeTextFile(p.opts.OutputPath, state.EmailList); err != nil {
			return err
		}
	}
	if len(p.opts.CSVPath) > 0 {
		if err := writeCSVFile(p.opts.CSVPath, state.Rows); err != nil {
			return err
		}
	}
	return nil
}

// collectEmails gathers the chosen addresses in row order, optionally
// dropping case-insensitive repeats while keeping the first spelling.
func (p *EmailListPipeline) collectEmails(rows []EmailRow) []string {
	emails := make([]string, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range rows {
		if row.ChosenEmail == "" {
			continue
		}
		key := strings.ToLower(row.ChosenEmail)
		if p.opts.UniqueEmails && seen[key] {
			continue
		}
		emails = append(emails, row.ChosenEmail)
		if p.opts.UniqueEmails {
			seen[key] = true
		}
	}
	return emails
}

func sampleRows(rows []EmailRow, limit int) []EmailRow {
	if len(rows) <= limit {
		return rows
	}
	return rows[:limit]
}

func groupNames(groups []models.Group) []string {
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Name)
	}
	return names
}

func writeTextFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write email list: %w", err)
	}
	return nil
}

func writeCSVFile(path string, rows []EmailRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"group_id", "person_id", "display_name", "chosen_email", "all_emails", "reason"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.GroupID,
			row.PersonID,
			row.DisplayName,
			row.ChosenEmail,
			strings.Join(row.AllEmails, ", "),
			row.Reason,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
