package config

const (
	systemAS4000 = "Automated System 4000"
	systemMS4000 = "Mini-System 4000"
)

// defaultInventory is the installed base listed when no inventory is configured.
var defaultInventory = []Machine{
	// Automated System 4000
	{ID: "asimco_china", Name: "ASIMCO International (AS4000)", Location: "China", SystemType: systemAS4000, Latitude: 39.9042, Longitude: 116.4074},
	{ID: "caterpillar_usa", Name: "Caterpillar (AS4000)", Location: "USA", SystemType: systemAS4000, Latitude: 40.7128, Longitude: -74.006},
	{ID: "daedong_korea", Name: "Daedong Metals (AS4000)", Location: "Korea", SystemType: systemAS4000, Latitude: 37.5665, Longitude: 126.978},
	{ID: "dashiang_1", Name: "Dashiang Precision (Line 1) (AS4000)", Location: "China", SystemType: systemAS4000, Latitude: 31.2304, Longitude: 121.4737},
	{ID: "dashiang_2", Name: "Dashiang Precision (Line 2) (AS4000)", Location: "China", SystemType: systemAS4000, Latitude: 31.2304, Longitude: 121.4737},
	{ID: "dongfeng_china", Name: "Dongfeng (AS4000)", Location: "China", SystemType: systemAS4000, Latitude: 30.5728, Longitude: 114.3055},
	{ID: "doktas_turkey", Name: "Döktas (AS4000)", Location: "Turkey", SystemType: systemAS4000, Latitude: 39.9334, Longitude: 32.8597},
	{ID: "faw_china", Name: "FAW Changchun (AS4000)", Location: "China", SystemType: systemAS4000, Latitude: 43.8171, Longitude: 125.3235},
	{ID: "federal_mogul_sweden", Name: "Federal Mogul (AS4000)", Location: "Sweden", SystemType: systemAS4000, Latitude: 59.3293, Longitude: 18.0686},
	{ID: "hyundai_korea", Name: "Hyundai Jeonju (AS4000)", Location: "Korea", SystemType: systemAS4000, Latitude: 35.8242, Longitude: 127.148},
	{ID: "impro_mexico", Name: "Impro Mexico (AS4000)", Location: "Mexico", SystemType: systemAS4000, Latitude: 19.4326, Longitude: -99.1332},
	{ID: "ironcast_mexico", Name: "IronCast (AS4000)", Location: "Mexico", SystemType: systemAS4000, Latitude: 25.6866, Longitude: -100.3161},
	{ID: "maringa_brazil", Name: "Maringá Soldas (AS4000)", Location: "Brazil", SystemType: systemAS4000, Latitude: -23.4205, Longitude: -51.9332},
	{ID: "scania_classic_sweden", Name: "Scania Classic Foundry (AS4000)", Location: "Sweden", SystemType: systemAS4000, Latitude: 58.4108, Longitude: 15.6214},
	{ID: "scania_new_sweden", Name: "Scania New Foundry (AS4000)", Location: "Sweden", SystemType: systemAS4000, Latitude: 58.4108, Longitude: 15.6214},
	{ID: "skf_sweden", Name: "SKF Mekan (AS4000)", Location: "Sweden", SystemType: systemAS4000, Latitude: 58.4108, Longitude: 15.6214},
	{ID: "tafalla_spain", Name: "Tafalla Iron Foundry (AS4000)", Location: "Spain", SystemType: systemAS4000, Latitude: 42.53, Longitude: -1.67},
	{ID: "tupy_betim_brazil", Name: "Tupy Betim (AS4000)", Location: "Brazil", SystemType: systemAS4000, Latitude: -19.9167, Longitude: -44.1},
	{ID: "tupy_joinville_e0", Name: "Tupy Joinville Line E0 (AS4000)", Location: "Brazil", SystemType: systemAS4000, Latitude: -26.3044, Longitude: -48.8464},
	{ID: "tupy_joinville_c4", Name: "Tupy Joinville Line C4 (AS4000)", Location: "Brazil", SystemType: systemAS4000, Latitude: -26.3044, Longitude: -48.8464},
	{ID: "tupy_ramos_mexico", Name: "Tupy Ramos (AS4000)", Location: "Mexico", SystemType: systemAS4000, Latitude: 25.6866, Longitude: -100.3161},
	{ID: "tupy_saltillo_3", Name: "Tupy Saltillo Line 3 (AS4000)", Location: "Mexico", SystemType: systemAS4000, Latitude: 25.4232, Longitude: -101.0053},
	{ID: "tupy_saltillo_4", Name: "Tupy Saltillo Line 4 (AS4000)", Location: "Mexico", SystemType: systemAS4000, Latitude: 25.4232, Longitude: -101.0053},
	{ID: "vdp_italy", Name: "VDP (AS4000)", Location: "Italy", SystemType: systemAS4000, Latitude: 45.4642, Longitude: 9.19},
	{ID: "volvo_sweden", Name: "Volvo (AS4000)", Location: "Sweden", SystemType: systemAS4000, Latitude: 57.7089, Longitude: 11.9746},
	{ID: "zhongding_china", Name: "Zhongding Power (AS4000)", Location: "China", SystemType: systemAS4000, Latitude: 31.2304, Longitude: 121.4737},

	// Mini-System 4000
	{ID: "ask_chemicals_usa", Name: "ASK Chemicals (MS4000)", Location: "USA", SystemType: systemMS4000, Latitude: 40.7128, Longitude: -74.006},
	{ID: "case_western_usa", Name: "Case Western Reserve (MS4000)", Location: "USA", SystemType: systemMS4000, Latitude: 41.4993, Longitude: -81.6944},
	{ID: "csic_china", Name: "CSIC (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 39.9042, Longitude: 116.4074},
	{ID: "dongfeng_mini_china", Name: "Dongfeng (Mini-System) (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 30.5728, Longitude: 114.3055},
	{ID: "dongya_china", Name: "Dongya Technology (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 31.2304, Longitude: 121.4737},
	{ID: "doosan_1_korea", Name: "Doosan Infracore (Line 1) (MS4000)", Location: "Korea", SystemType: systemMS4000, Latitude: 37.5665, Longitude: 126.978},
	{ID: "doosan_2_korea", Name: "Doosan Infracore (Line 2) (MS4000)", Location: "Korea", SystemType: systemMS4000, Latitude: 37.5665, Longitude: 126.978},
	{ID: "faw_research_china", Name: "FAW Changchun – Research (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 43.8171, Longitude: 125.3235},
	{ID: "faw_wuxi_china", Name: "FAW Wuxi (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 31.5689, Longitude: 120.2886},
	{ID: "ford_usa", Name: "Ford Casting Development (MS4000)", Location: "USA", SystemType: systemMS4000, Latitude: 42.3314, Longitude: -83.0458},
	{ID: "impro_china", Name: "Impro China (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 31.2304, Longitude: 121.4737},
	{ID: "jiangling_china", Name: "Jiangling Motors (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 28.6139, Longitude: 115.8821},
	{ID: "jonkoping_sweden", Name: "Jönköping University (MS4000)", Location: "Sweden", SystemType: systemMS4000, Latitude: 57.7826, Longitude: 14.1618},
	{ID: "mid_city_usa", Name: "Mid-City Foundry (MS4000)", Location: "USA", SystemType: systemMS4000, Latitude: 41.8781, Longitude: -87.6298},
	{ID: "roslagsgjuteriet_sweden", Name: "Roslagsgjuteriet (MS4000)", Location: "Sweden", SystemType: systemMS4000, Latitude: 59.3293, Longitude: 18.0686},
	{ID: "saroj_india", Name: "Saroj Group (MS4000)", Location: "India", SystemType: systemMS4000, Latitude: 28.6139, Longitude: 77.209},
	{ID: "shanxi_diesel_china", Name: "Shanxi Diesel (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 37.8706, Longitude: 112.5489},
	{ID: "shanxi_sanlian_china", Name: "Shanxi Sanlian (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 37.8706, Longitude: 112.5489},
	{ID: "toa_koki_japan", Name: "Toa Koki (MS4000)", Location: "Japan", SystemType: systemMS4000, Latitude: 35.6762, Longitude: 139.6503},
	{ID: "total_solutions_korea", Name: "Total Solutions & Power (MS4000)", Location: "Korea", SystemType: systemMS4000, Latitude: 37.5665, Longitude: 126.978},
	{ID: "tupy_funfrap_portugal", Name: "Tupy Funfrap (MS4000)", Location: "Portugal", SystemType: systemMS4000, Latitude: 41.1579, Longitude: -8.6291},
	{ID: "undisclosed_japan", Name: "Undisclosed (MS4000)", Location: "Japan", SystemType: systemMS4000, Latitude: 35.6762, Longitude: 139.6503},
	{ID: "university_alabama_usa", Name: "University of Alabama (MS4000)", Location: "USA", SystemType: systemMS4000, Latitude: 33.2098, Longitude: -87.5692},
	{ID: "yto_china", Name: "YTO Group (MS4000)", Location: "China", SystemType: systemMS4000, Latitude: 34.7466, Longitude: 113.6253},
}
