package sources

// Categories a source may belong to. Reports only count these.
const (
	CategoryTechnology = "technology"
	CategoryBusiness   = "business"
	CategoryInvesting  = "investing"
)

// Regions covered by the built-in registry.
const (
	RegionNorthAmerica = "north_america"
	RegionEurope       = "europe"
	RegionAsia         = "asia"
)

// Descriptor is the immutable configuration for one news outlet: where its
// homepage lives and which selectors locate articles on it. Loaded once at
// startup and never mutated.
type Descriptor struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	ArticleSelector string `json:"article_selector"`
	TitleSelector   string `json:"title_selector"`
	ContentSelector string `json:"content_selector"`
	DateSelector    string `json:"date_selector"`
	Category        string `json:"category"`
	Region          string `json:"region"`
	Country         string `json:"country,omitempty"`
}

// Builtin returns the full built-in source registry across all regions.
// The returned slice is a fresh copy; callers may filter it freely.
func Builtin() []Descriptor {
	out := make([]Descriptor, 0, len(builtin))
	out = append(out, builtin...)
	return out
}

var builtin = []Descriptor{
	// North American sources
	{
		Name:            "TechCrunch",
		URL:             "https://techcrunch.com/",
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".article-content",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionNorthAmerica,
		Country:         "usa",
	},
	{
		Name:            "CNBC",
		URL:             "https://www.cnbc.com/technology/",
		ArticleSelector: "div.Card-standardBreakerCard",
		TitleSelector:   "h1",
		ContentSelector: ".ArticleBody-articleBody",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionNorthAmerica,
		Country:         "usa",
	},
	{
		Name:            "Ars Technica",
		URL:             "https://arstechnica.com/",
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".article-content",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionNorthAmerica,
		Country:         "usa",
	},
	{
		Name:            "VentureBeat",
		URL:             "https://venturebeat.com/",
		ArticleSelector: "article",
		TitleSelector:   "h1.article-title",
		ContentSelector: ".article-content",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionNorthAmerica,
		Country:         "usa",
	},
	{
		Name:            "Business Insider",
		URL:             "https://www.businessinsider.com/tech",
		ArticleSelector: ".tout-title-link",
		TitleSelector:   "h1",
		ContentSelector: ".content-lock-content",
		DateSelector:    "time",
		Category:        CategoryBusiness,
		Region:          RegionNorthAmerica,
		Country:         "usa",
	},
	{
		Name:            "MarketWatch",
		URL:             "https://www.marketwatch.com/investing",
		ArticleSelector: ".article__content",
		TitleSelector:   "h1",
		ContentSelector: ".article__body",
		DateSelector:    "time",
		Category:        CategoryInvesting,
		Region:          RegionNorthAmerica,
		Country:         "usa",
	},

	// European sources
	{
		Name:            "The Register",
		URL:             "https://www.theregister.com/",
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".article_copy",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionEurope,
		Country:         "uk",
	},
	{
		Name:            "The Guardian Tech",
		URL:             "https://www.theguardian.com/technology",
		ArticleSelector: ".fc-item__container",
		TitleSelector:   "h1",
		ContentSelector: ".article-body-commercial-selector",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionEurope,
		Country:         "uk",
	},
	{
		Name:            "BBC Technology",
		URL:             "https://www.bbc.com/news/technology",
		ArticleSelector: ".gs-c-promo",
		TitleSelector:   "h1",
		ContentSelector: ".ssrcss-11r1m41-RichTextComponentWrapper",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionEurope,
		Country:         "uk",
	},
	{
		Name:            "Handelsblatt",
		URL:             "https://www.handelsblatt.com/technik/",
		ArticleSelector: ".o-teaser",
		TitleSelector:   "h1, .c-headline",
		ContentSelector: ".c-article-text",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionEurope,
		Country:         "germany",
	},
	{
		Name:            "Les Echos",
		URL:             "https://www.lesechos.fr/tech-medias",
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".post-content",
		DateSelector:    "time",
		Category:        CategoryBusiness,
		Region:          RegionEurope,
		Country:         "france",
	},
	{
		Name:            "El País Tecnología",
		URL:             "https://elpais.com/tecnologia/",
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".articulo__contenedor",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionEurope,
		Country:         "spain",
	},
	{
		Name:            "Financial Times Tech",
		URL:             "https://www.ft.com/technology",
		ArticleSelector: ".o-teaser",
		TitleSelector:   "h1",
		ContentSelector: ".article-body",
		DateSelector:    "time",
		Category:        CategoryBusiness,
		Region:          RegionEurope,
		Country:         "uk",
	},

	// Asian sources
	{
		Name:            "Tech in Asia",
		URL:             "https://www.techinasia.com/",
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".article-content",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "singapore",
	},
	{
		Name:            "South China Morning Post Tech",
		URL:             "https://www.scmp.com/tech",
		ArticleSelector: ".article-item",
		TitleSelector:   "h1",
		ContentSelector: ".article-body-content",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "hong_kong",
	},
	{
		Name:            "Nikkei Asia Tech",
		URL:             "https://asia.nikkei.com/Business/Technology",
		ArticleSelector: ".article-card",
		TitleSelector:   "h1",
		ContentSelector: ".ezrichtext-field",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "japan",
	},
	{
		Name:            "The Straits Times Tech",
		URL:             "https://www.straitstimes.com/tech",
		ArticleSelector: ".story-card",
		TitleSelector:   "h1",
		ContentSelector: ".article-content",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "singapore",
	},
	{
		Name:            "Asia Times",
		URL:             "https://asiatimes.com/category/technology/",
		ArticleSelector: "article",
		TitleSelector:   "h1",
		ContentSelector: ".entry-content",
		DateSelector:    ".entry-date",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "hong_kong",
	},
	{
		Name:            "The Japan Times Tech",
		URL:             "https://www.japantimes.co.jp/news/business/tech/",
		ArticleSelector: ".article-card",
		TitleSelector:   "h1",
		ContentSelector: ".main-content article",
		DateSelector:    "time",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "japan",
	},
	{
		Name:            "CNA Tech",
		URL:             "https://www.channelnewsasia.com/technology",
		ArticleSelector: ".teaser",
		TitleSelector:   "h1",
		ContentSelector: ".article-body",
		DateSelector:    ".article-publish",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "singapore",
	},
	{
		Name:            "China Daily Tech",
		URL:             "https://www.chinadaily.com.cn/business/tech",
		ArticleSelector: ".content_left ul li",
		TitleSelector:   "h1",
		ContentSelector: "#Content",
		DateSelector:    ".info_l",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "china",
	},
	{
		Name:            "The Economic Times Tech",
		URL:             "https://economictimes.indiatimes.com/tech",
		ArticleSelector: ".story-card",
		TitleSelector:   "h1",
		ContentSelector: ".artText",
		DateSelector:    ".publish_t",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "india",
	},
	{
		Name:            "The Korea Herald Tech",
		URL:             "http://www.koreaherald.com/list.php?ct=020206000000",
		ArticleSelector: ".list",
		TitleSelector:   ".view_tit",
		ContentSelector: "#articleText",
		DateSelector:    ".date_time",
		Category:        CategoryTechnology,
		Region:          RegionAsia,
		Country:         "south_korea",
	},
}
