// Package api defines the request and response messages of the LogFlow
// Connect services. Messages travel as JSON (see package apiconnect).
package api

// Item is one packing-list line. Absent numeric fields are null.
type Item struct {
	Id              string   `json:"id"`
	Kind            string   `json:"kind"`
	ProductCode     string   `json:"productCode,omitempty"`
	ProductName     string   `json:"productName,omitempty"`
	Description     string   `json:"description,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Location        string   `json:"location,omitempty"`
	Category        string   `json:"category,omitempty"`
	Source          string   `json:"source,omitempty"`
	Quantity        *int64   `json:"quantity,omitempty"`
	Unit            string   `json:"unit,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	EstimatedWeight *float64 `json:"estimatedWeight,omitempty"`
	Volume          *float64 `json:"volume,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	IsCleaned       bool     `json:"isCleaned"`
	IsVerified      bool     `json:"isVerified"`
}

// Diagnostic reports a value the aggregator substituted with zero.
type Diagnostic struct {
	Index    int32  `json:"index"`
	ItemId   string `json:"itemId"`
	Field    string `json:"field"`
	Original string `json:"original"`
	Reason   string `json:"reason"`
}

// GroupCount is one bucket of a grouping, in first-seen order.
type GroupCount struct {
	Key   string `json:"key"`
	Count int32  `json:"count"`
}

// GroupShare is the rounded percentage of one bucket.
type GroupShare struct {
	Key     string  `json:"key"`
	Percent float64 `json:"percent"`
}

// Totals are the aggregates of an item collection.
type Totals struct {
	TotalItems        int64         `json:"totalItems"`
	TotalWeight       float64       `json:"totalWeight"`
	TotalVolume       float64       `json:"totalVolume"`
	AverageConfidence *float64      `json:"averageConfidence,omitempty"`
	CountByCategory   []*GroupCount `json:"countByCategory"`
	CountByType       []*GroupCount `json:"countByType"`
	CleanedCount      int32         `json:"cleanedCount"`
	VerifiedCount     int32         `json:"verifiedCount"`
	Diagnostics       []*Diagnostic `json:"diagnostics,omitempty"`
}

// Romaneio is a packing list with its items and recomputed totals.
type Romaneio struct {
	Id        string  `json:"id"`
	Number    string  `json:"number"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	CreatedBy string  `json:"createdBy,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	Items     []*Item `json:"items"`
	Totals    *Totals `json:"totals"`
}

// RomaneioSummary is a list row: the header plus totals, without items.
type RomaneioSummary struct {
	Id        string  `json:"id"`
	Number    string  `json:"number"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	CreatedBy string  `json:"createdBy,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	Totals    *Totals `json:"totals"`
}

// Stats are the dashboard statistics across all romaneios.
type Stats struct {
	TotalRomaneios          int32         `json:"totalRomaneios"`
	ByType                  []*GroupCount `json:"byType"`
	ByStatus                []*GroupCount `json:"byStatus"`
	TypeShares              []*GroupShare `json:"typeShares"`
	StatusShares            []*GroupShare `json:"statusShares"`
	TotalItems              int64         `json:"totalItems"`
	TotalWeight             float64       `json:"totalWeight"`
	TotalVolume             float64       `json:"totalVolume"`
	CompletionRate          *float64      `json:"completionRate,omitempty"`
	AverageItemsPerRomaneio *float64      `json:"averageItemsPerRomaneio,omitempty"`
	Anomalies               int32         `json:"anomalies"`
}

type CreateRomaneioRequest struct {
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	CreatedBy string  `json:"createdBy,omitempty"`
	Items     []*Item `json:"items,omitempty"`
}

type CreateRomaneioResponse struct {
	Romaneio *Romaneio `json:"romaneio"`
}

type GetRomaneioRequest struct {
	Id string `json:"id"`
}

type GetRomaneioResponse struct {
	Romaneio *Romaneio `json:"romaneio"`
}

type ListRomaneiosRequest struct {
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}

type ListRomaneiosResponse struct {
	Romaneios []*RomaneioSummary `json:"romaneios"`
}

type UpdateStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	Romaneio *Romaneio `json:"romaneio"`
}

type DeleteRomaneioRequest struct {
	Id string `json:"id"`
}

type DeleteRomaneioResponse struct{}

type AddItemsRequest struct {
	RomaneioId string  `json:"romaneioId"`
	Items      []*Item `json:"items"`
}

type AddItemsResponse struct {
	Romaneio *Romaneio `json:"romaneio"`
	Added    []*Item   `json:"added"`
}

type UpdateItemRequest struct {
	RomaneioId string `json:"romaneioId"`
	Item       *Item  `json:"item"`
}

type UpdateItemResponse struct {
	Romaneio *Romaneio `json:"romaneio"`
}

type RemoveItemRequest struct {
	RomaneioId string `json:"romaneioId"`
	ItemId     string `json:"itemId"`
}

type RemoveItemResponse struct {
	Romaneio *Romaneio `json:"romaneio"`
}

type ToggleVerifiedRequest struct {
	RomaneioId string `json:"romaneioId"`
	ItemId     string `json:"itemId"`
}

type ToggleVerifiedResponse struct {
	Romaneio *Romaneio `json:"romaneio"`
}

// ComputeTotalsRequest aggregates an ad-hoc collection that is not stored.
type ComputeTotalsRequest struct {
	Items []*Item `json:"items"`
}

type ComputeTotalsResponse struct {
	Totals *Totals `json:"totals"`
}

// GroupItemsRequest groups either a stored romaneio (RomaneioId) or the
// given Items by Field (category, type, unit, source, cleaned, verified).
type GroupItemsRequest struct {
	RomaneioId string  `json:"romaneioId,omitempty"`
	Items      []*Item `json:"items,omitempty"`
	Field      string  `json:"field"`
}

type GroupItemsResponse struct {
	Groups []*GroupCount `json:"groups"`
	Shares []*GroupShare `json:"shares"`
	Total  int32         `json:"total"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Stats *Stats `json:"stats"`
}

// CleaningRule is the wire form of a configured cleaning rule.
type CleaningRule struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Description  string            `json:"description,omitempty"`
	Active       bool              `json:"active"`
	Priority     int32             `json:"priority"`
	Fields       []string          `json:"fields,omitempty"`
	Field        string            `json:"field,omitempty"`
	Mode         string            `json:"mode,omitempty"`
	Keep         string            `json:"keep,omitempty"`
	Pattern      string            `json:"pattern,omitempty"`
	Drop         bool              `json:"drop,omitempty"`
	Replacements map[string]string `json:"replacements,omitempty"`
	Sources      []string          `json:"sources,omitempty"`
	Target       string            `json:"target,omitempty"`
	Separator    string            `json:"separator,omitempty"`
}

type ListCleaningRulesRequest struct{}

type ListCleaningRulesResponse struct {
	Rules []*CleaningRule `json:"rules"`
}

// CleanItemsRequest runs the named rules (all active rules when empty) over
// a romaneio's items. With Save set the cleaned collection replaces the
// stored one.
type CleanItemsRequest struct {
	RomaneioId string   `json:"romaneioId"`
	RuleNames  []string `json:"ruleNames,omitempty"`
	Save       bool     `json:"save,omitempty"`
}

type CleaningIssue struct {
	Index   int32  `json:"index"`
	ItemId  string `json:"itemId"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type CleanItemsResponse struct {
	OriginalCount int32            `json:"originalCount"`
	CleanedCount  int32            `json:"cleanedCount"`
	RemovedCount  int32            `json:"removedCount"`
	Warnings      []*CleaningIssue `json:"warnings"`
	Errors        []*CleaningIssue `json:"errors"`
	Items         []*Item          `json:"items"`
	Romaneio      *Romaneio        `json:"romaneio,omitempty"`
}

// AutomationJob is the progress of one automated processing run.
type AutomationJob struct {
	Id         string   `json:"id"`
	RomaneioId string   `json:"romaneioId"`
	Phase      string   `json:"phase"`
	Step       string   `json:"step,omitempty"`
	StepIndex  int32    `json:"stepIndex"`
	Steps      []string `json:"steps"`
	Reason     string   `json:"reason,omitempty"`
	Progress   float64  `json:"progress"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
}

type StartAutomationRequest struct {
	RomaneioId string `json:"romaneioId"`
}

type StartAutomationResponse struct {
	Job *AutomationJob `json:"job"`
}

// SignalAutomationRequest reports a completion signal for a job.
// Event is one of start, step_done, fail, reset.
type SignalAutomationRequest struct {
	JobId  string `json:"jobId"`
	Event  string `json:"event"`
	Step   string `json:"step,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type SignalAutomationResponse struct {
	Job *AutomationJob `json:"job"`
}

type GetAutomationRequest struct {
	JobId string `json:"jobId"`
}

type GetAutomationResponse struct {
	Job *AutomationJob `json:"job"`
}

type ListAutomationsRequest struct {
	RomaneioId string `json:"romaneioId,omitempty"`
}

type ListAutomationsResponse struct {
	Jobs []*AutomationJob `json:"jobs"`
}
