package mdparse

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel folds a field label to its lookup form: NFKC (so full-width
// colons and letters become ASCII), trailing colons removed, inner whitespace
// collapsed, case folded.
func NormalizeLabel(s string) string {
	s = norm.NFKC.String(s)
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ":")
	s = strings.Join(strings.Fields(s), " ")
	// Casers keep state between calls and must not be shared.
	return cases.Fold().String(s)
}

// labelSet maps normalized surface labels to a canonical key.
type labelSet[K comparable] map[string]K

func newLabelSet[K comparable](synonyms map[K][]string) labelSet[K] {
	set := make(labelSet[K])
	for key, labels := range synonyms {
		for _, l := range labels {
			set[NormalizeLabel(l)] = key
		}
	}
	return set
}

func (s labelSet[K]) lookup(label string) (K, bool) {
	k, ok := s[NormalizeLabel(label)]
	return k, ok
}

var fieldLabels = newLabelSet(map[FieldKey][]string{
	FieldDescription: {
		"Description", "Statement", "Requirement", "Requirement Statement",
		"描述", "需求描述", "说明", "需求说明",
	},
	FieldRationale: {
		"Rationale", "Reason", "Justification",
		"理由", "依据", "原因",
	},
	FieldPriority: {
		"Priority",
		"优先级",
	},
	FieldSafetyClass: {
		"Safety Class", "Safety Classification", "Software Safety Class", "IEC 62304 Class",
		"安全等级", "安全分类", "安全级别", "软件安全等级",
	},
	FieldVerification: {
		"Verification", "Verification Method", "Test Method",
		"验证方法", "验证方式",
	},
	FieldAcceptanceCriteria: {
		"Acceptance Criteria", "Acceptance",
		"验收标准", "验收准则",
	},
})

// LookupField returns the canonical key for a requirement field label.
// Unknown labels map to FieldOther.
func LookupField(label string) FieldKey {
	if k, ok := fieldLabels.lookup(label); ok {
		return k
	}
	return FieldOther
}

type coverKey int

const (
	coverTitle coverKey = iota
	coverSubtitle
	coverVersion
	coverAuthor
	coverOrganization
	coverDate
)

var coverLabels = newLabelSet(map[coverKey][]string{
	coverTitle:        {"Title", "Document Title", "标题", "文档标题"},
	coverSubtitle:     {"Subtitle", "Document Type", "副标题", "文档类型"},
	coverVersion:      {"Version", "Document Version", "版本", "版本号", "文档版本"},
	coverAuthor:       {"Author", "Authors", "Prepared By", "作者", "编写", "编制", "编写人"},
	coverOrganization: {"Organization", "Organisation", "Company", "公司", "组织", "单位"},
	coverDate:         {"Date", "Created", "Last Updated", "日期", "创建日期", "更新日期"},
})

var tocMarkers = newLabelSet(map[bool][]string{
	true: {"Table of Contents", "Contents", "TOC", "目录"},
})

var revisionMarkers = newLabelSet(map[bool][]string{
	true: {"Revision History", "Change History", "Document History", "修订历史", "修订记录", "版本历史", "变更历史", "变更记录"},
})

// setCover stores value in the CoverInfo slot named by label.
// Slots already filled are left alone.
func setCover(c *CoverInfo, label, value string) bool {
	key, ok := coverLabels.lookup(label)
	if !ok {
		return false
	}
	slot := map[coverKey]*string{
		coverTitle:        &c.Title,
		coverSubtitle:     &c.Subtitle,
		coverVersion:      &c.Version,
		coverAuthor:       &c.Author,
		coverOrganization: &c.Organization,
		coverDate:         &c.Date,
	}[key]
	if *slot == "" {
		*slot = value
	}
	return true
}
