package model

// BadgeInfo is the static badge table matching the producer's badge system.
// It backs badge symbols whose descriptions are missing from a snapshot;
// an unknown symbol simply renders without a description.
var BadgeInfo = map[string]BadgeDescription{
	"🎯": {Name: "안정 러너", Message: "꾸준히 높은 기본 점수를 유지하는 채널"},
	"💬": {Name: "인게이지먼트 킹", Message: "시청자 참여율이 탁월한 채널"},
	"🔥": {Name: "바이럴 메이커", Message: "중간값 대비 압도적인 히트 영상을 만든 채널"},
	"📈": {Name: "성장 로켓", Message: "최근 영상 성과가 빠르게 상승 중인 채널"},
	"⭐": {Name: "올라운더", Message: "모든 지표가 전체 평균 이상인 채널"},
}

// DescribeBadge resolves a badge symbol against the channel's own
// descriptions first, then the static table. The second return reports
// whether any description was found.
func DescribeBadge(symbol string, own map[string]BadgeDescription) (BadgeDescription, bool) {
	if own != nil {
		if d, ok := own[symbol]; ok {
			return d, true
		}
	}
	d, ok := BadgeInfo[symbol]
	return d, ok
}
