package model

// UserBasic 是画像中的用户基础信息，缺失时字段为零值。
type UserBasic struct {
	Birth  string `json:"birth"` // "YYYY-MM-DD"，未知时为空
	Gender string `json:"gender"`
}

// SkinAnalysis 是最近一次照片分析的指标，没有记录时全部为零值。
type SkinAnalysis struct {
	AcneCount        int     `json:"acne_count"`
	AcneAreaRatio    float64 `json:"acne_area_ratio"`
	RednessAreaRatio float64 `json:"redness_area_ratio"`
}

// SurveyData 是问卷得分与判定结果，没有问卷时得分为 0、类型为空。
type SurveyData struct {
	DOScore         int    `json:"baumann_do_score"`
	SRScore         int    `json:"baumann_sr_score"`
	PNScore         int    `json:"baumann_pn_score"`
	WTScore         int    `json:"baumann_wt_score"`
	SkinType        string `json:"baumann_skin_type"`
	CombinationType string `json:"is_combination_skin"`
}

// UserProfile 是聚合后的用户画像，供提示词构建使用。
// 任何数据缺失都以默认值兜底，聚合本身不会因此报错。
// Age 与四个描述文本由聚合器根据得分和生日填充。
type UserProfile struct {
	UserProfile  UserBasic    `json:"user_profile"`
	SkinAnalysis SkinAnalysis `json:"skin_analysis"`
	SurveyData   SurveyData   `json:"survey_data"`
	Age          string       `json:"age"` // 周岁数字或 "알 수 없음"
	DODesc       string       `json:"do_desc"`
	SRDesc       string       `json:"sr_desc"`
	PNDesc       string       `json:"pn_desc"`
	WTDesc       string       `json:"wt_desc"`
}
