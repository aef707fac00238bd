// Package dashboard renders the stored jobs and scan stats into a static,
// self-contained HTML page. Filtering, sorting, and the charts run
// client-side over a JSON blob embedded in the page, so the output can be
// opened straight from disk.
package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

// Renderer writes the HTML dashboard.
type Renderer struct {
	title string
	tmpl  *template.Template
}

// New returns a Renderer with the given page title.
func New(title string) *Renderer {
	return &Renderer{
		title: title,
		tmpl:  template.Must(template.New("dashboard").Parse(pageTemplate)),
	}
}

// jobJSON is the shape each job takes inside the embedded JSON blob. The
// field names are what the page script indexes into.
type jobJSON struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Location    string           `json:"location"`
	URL         string           `json:"url"`
	Score       float64          `json:"match_score"`
	Explanation string           `json:"match_explanation"`
	Matched     []string         `json:"skills_matched"`
	Missing     []string         `json:"skills_missing"`
	Breakdown   *model.Breakdown `json:"match_breakdown,omitempty"`
	PostedDate  string           `json:"posted_date,omitempty"`
	ScrapedDate string           `json:"scraped_date"`
}

type pageData struct {
	Title       string
	GeneratedAt string
	TotalJobs   int
	AvgScore    string
	HighMatches int
	Companies   int
	LastScan    string
	JobsJSON    template.JS
}

// Render writes the dashboard for the given jobs and stats to w.
func (r *Renderer) Render(w io.Writer, jobs []model.Job, stats model.Stats) error {
	rows := make([]jobJSON, 0, len(jobs))
	companies := make(map[string]struct{})
	for _, j := range jobs {
		companies[j.Company] = struct{}{}
		row := jobJSON{
			ID:          j.ID,
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			URL:         j.URL,
			ScrapedDate: j.ScrapedAt.Format(time.RFC3339),
		}
		if j.PostedAt != nil {
			row.PostedDate = j.PostedAt.Format(time.RFC3339)
		}
		if j.Match != nil {
			row.Score = j.Match.Score
			row.Explanation = j.Match.Explanation
			row.Matched = j.Match.SkillsMatched
			row.Missing = j.Match.SkillsMissing
			b := j.Match.Breakdown
			row.Breakdown = &b
		}
		if row.Matched == nil {
			row.Matched = []string{}
		}
		if row.Missing == nil {
			row.Missing = []string{}
		}
		rows = append(rows, row)
	}

	blob, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal jobs: %w", err)
	}

	data := pageData{
		Title:       r.title,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		TotalJobs:   stats.TotalJobs,
		AvgScore:    fmt.Sprintf("%.1f", stats.AvgScore),
		HighMatches: stats.HighMatches,
		Companies:   len(companies),
		JobsJSON:    template.JS(blob),
	}
	if stats.LastScan != nil {
		data.LastScan = stats.LastScan.ScanTime.Format("2006-01-02 15:04")
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// RenderFile renders the dashboard to the file at path.
func (r *Renderer) RenderFile(path string, jobs []model.Job, stats model.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dashboard file: %w", err)
	}
	defer f.Close()

	if err := r.Render(f, jobs, stats); err != nil {
		return err
	}
	return f.Close()
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - AI/ML Job Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js"></script>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  background: #f5f7fa; color: #2c3e50; padding: 20px;
}
.header {
  background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
  color: white; padding: 30px; border-radius: 10px; margin-bottom: 30px;
}
.header h1 { font-size: 2.2em; margin-bottom: 8px; }
.header .subtitle { opacity: 0.9; }
.stats-grid {
  display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
  gap: 20px; margin-bottom: 30px;
}
.stat-card {
  background: white; padding: 20px; border-radius: 8px;
  box-shadow: 0 2px 4px rgba(0,0,0,0.1); text-align: center;
}
.stat-card .value { font-size: 2.2em; font-weight: bold; color: #667eea; display: block; }
.stat-card .label { color: #7f8c8d; margin-top: 5px; font-size: 0.9em; }
.filters, .analytics {
  background: white; padding: 20px; border-radius: 8px;
  margin-bottom: 30px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}
.filters h3, .analytics h3 { margin-bottom: 15px; }
.filter-group {
  display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px;
}
.filter-group label { display: block; margin-bottom: 5px; font-weight: 600; }
.filter-group input, .filter-group select {
  width: 100%; padding: 8px 12px; border: 1px solid #ddd; border-radius: 5px;
}
.charts-grid {
  display: grid; grid-template-columns: repeat(auto-fit, minmax(350px, 1fr)); gap: 30px;
}
.chart-container { position: relative; height: 280px; }
.job-grid { display: grid; gap: 20px; }
.job-card {
  background: white; padding: 20px; border-radius: 8px;
  box-shadow: 0 2px 4px rgba(0,0,0,0.1); border-left: 4px solid #ddd;
}
.job-card.high-match { border-left-color: #2ecc71; }
.job-card.medium-match { border-left-color: #f39c12; }
.job-card.low-match { border-left-color: #95a5a6; }
.job-header { display: flex; justify-content: space-between; align-items: start; }
.job-title { font-size: 1.25em; font-weight: bold; }
.job-company { color: #667eea; font-size: 1.05em; }
.job-location { color: #7f8c8d; font-size: 0.9em; }
.match-score { font-size: 2em; font-weight: bold; min-width: 60px; text-align: right; }
.match-score.high { color: #2ecc71; }
.match-score.medium { color: #f39c12; }
.match-score.low { color: #95a5a6; }
.job-details { margin-top: 15px; padding-top: 15px; border-top: 1px solid #ecf0f1; }
.match-explanation { color: #7f8c8d; line-height: 1.6; margin-bottom: 10px; }
.skills { display: flex; flex-wrap: wrap; gap: 8px; margin: 10px 0; }
.skill { padding: 4px 12px; border-radius: 15px; font-size: 0.85em; font-weight: 500; }
.skill.matched { background: #d5f4e6; color: #27ae60; }
.skill.missing { background: #fadbd8; color: #c0392b; }
.job-actions { display: flex; gap: 10px; margin-top: 15px; }
.btn {
  padding: 8px 16px; border: none; border-radius: 5px; cursor: pointer;
  font-size: 0.9em; font-weight: 600; text-decoration: none;
}
.btn-primary { background: #667eea; color: white; }
.btn-secondary { background: #ecf0f1; color: #2c3e50; }
.expanded-details {
  display: none; margin-top: 15px; padding: 15px; background: #f8f9fa; border-radius: 5px;
}
.expanded-details.show { display: block; }
.match-breakdown {
  display: grid; grid-template-columns: repeat(auto-fit, minmax(130px, 1fr)); gap: 15px;
}
.breakdown-item { text-align: center; padding: 10px; background: white; border-radius: 5px; }
.breakdown-item .value { font-size: 1.4em; font-weight: bold; color: #667eea; }
.breakdown-item .label { font-size: 0.85em; color: #7f8c8d; margin-top: 5px; }
.no-results { text-align: center; padding: 60px 20px; color: #7f8c8d; font-size: 1.2em; }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Title}} Dashboard</h1>
  <div class="subtitle">Generated {{.GeneratedAt}}{{if .LastScan}} &middot; last scan {{.LastScan}}{{end}}</div>
</div>

<div class="stats-grid">
  <div class="stat-card"><span class="value" id="stat-total">{{.TotalJobs}}</span><span class="label">Total Jobs</span></div>
  <div class="stat-card"><span class="value" id="stat-avg">{{.AvgScore}}</span><span class="label">Avg Match Score</span></div>
  <div class="stat-card"><span class="value">{{.HighMatches}}</span><span class="label">High Matches (80+)</span></div>
  <div class="stat-card"><span class="value" id="stat-companies">{{.Companies}}</span><span class="label">Companies</span></div>
</div>

<div class="filters">
  <h3>Filters</h3>
  <div class="filter-group">
    <div>
      <label>Min Match Score</label>
      <input type="range" id="minScore" min="0" max="100" value="0" step="5">
      <span id="minScoreValue">0</span>
    </div>
    <div>
      <label>Search</label>
      <input type="text" id="searchInput" placeholder="Search title, company, skills...">
    </div>
    <div>
      <label>Company</label>
      <select id="companyFilter"><option value="">All Companies</option></select>
    </div>
    <div>
      <label>Sort By</label>
      <select id="sortBy">
        <option value="score">Match Score</option>
        <option value="date">Date Scanned</option>
        <option value="company">Company Name</option>
      </select>
    </div>
  </div>
</div>

<div class="analytics">
  <h3>Analytics</h3>
  <div class="charts-grid">
    <div class="chart-container"><canvas id="companiesChart"></canvas></div>
    <div class="chart-container"><canvas id="scoresChart"></canvas></div>
  </div>
</div>

<div class="job-grid" id="jobGrid"></div>
<div class="no-results" id="noResults" style="display: none;">
  No jobs match your filters. Try adjusting the criteria.
</div>

<script>
const jobsData = {{.JobsJSON}};

function esc(s) {
  const d = document.createElement('div');
  d.textContent = s == null ? '' : String(s);
  return d.innerHTML;
}

function renderJobs(jobs) {
  const grid = document.getElementById('jobGrid');
  const noResults = document.getElementById('noResults');
  if (jobs.length === 0) {
    grid.style.display = 'none';
    noResults.style.display = 'block';
    return;
  }
  grid.style.display = 'grid';
  noResults.style.display = 'none';

  grid.innerHTML = jobs.map(job => {
    const scoreClass = job.match_score >= 80 ? 'high' : job.match_score >= 60 ? 'medium' : 'low';
    const cardClass = scoreClass + '-match';
    const matched = (job.skills_matched || []).slice(0, 8);
    const missing = (job.skills_missing || []).slice(0, 5);
    const b = job.match_breakdown || {};
    return ` + "`" + `
      <div class="job-card ${cardClass}">
        <div class="job-header">
          <div>
            <div class="job-title">${esc(job.title)}</div>
            <div class="job-company">${esc(job.company)}</div>
            <div class="job-location">${esc(job.location || 'Remote')}</div>
          </div>
          <div class="match-score ${scoreClass}">${job.match_score.toFixed(0)}</div>
        </div>
        <div class="job-details">
          <div class="match-explanation">${esc(job.match_explanation || '')}</div>
          ${matched.length ? '<div class="skills">' + matched.map(s => '<span class="skill matched">' + esc(s) + '</span>').join('') + '</div>' : ''}
          ${missing.length ? '<div class="skills">' + missing.map(s => '<span class="skill missing">' + esc(s) + '</span>').join('') + '</div>' : ''}
          <div class="expanded-details" id="details-${esc(job.id)}">
            <div class="match-breakdown">
              <div class="breakdown-item"><div class="value">${(b.skills || 0).toFixed(0)}</div><div class="label">Skills</div></div>
              <div class="breakdown-item"><div class="value">${(b.role_fit || 0).toFixed(0)}</div><div class="label">Role Fit</div></div>
              <div class="breakdown-item"><div class="value">${(b.company_traits || 0).toFixed(0)}</div><div class="label">Company</div></div>
              <div class="breakdown-item"><div class="value">${(b.experience_level || 0).toFixed(0)}</div><div class="label">Experience</div></div>
              <div class="breakdown-item"><div class="value">${(b.fresh_grad_friendly || 0).toFixed(0)}</div><div class="label">New Grad</div></div>
              <div class="breakdown-item"><div class="value">${(b.location_bonus || 0).toFixed(0)}</div><div class="label">Location</div></div>
            </div>
          </div>
          <div class="job-actions">
            <a href="${esc(job.url)}" target="_blank" class="btn btn-primary">View Job</a>
            <button class="btn btn-secondary" onclick="toggleDetails('${esc(job.id)}')">Details</button>
          </div>
        </div>
      </div>` + "`" + `;
  }).join('');
}

function toggleDetails(id) {
  document.getElementById('details-' + id).classList.toggle('show');
}

function updateStats(jobs) {
  document.getElementById('stat-total').textContent = jobs.length;
  const avg = jobs.length ? jobs.reduce((s, j) => s + (j.match_score || 0), 0) / jobs.length : 0;
  document.getElementById('stat-avg').textContent = avg.toFixed(1);
  document.getElementById('stat-companies').textContent = new Set(jobs.map(j => j.company)).size;
}

function populateCompanies() {
  const dd = document.getElementById('companyFilter');
  [...new Set(jobsData.map(j => j.company))].sort().forEach(c => {
    const o = document.createElement('option');
    o.value = c;
    o.textContent = c;
    dd.appendChild(o);
  });
}
populateCompanies();

var companiesChart = null;
var scoresChart = null;

function topCompanies(jobs) {
  const counts = {};
  jobs.forEach(j => { counts[j.company] = (counts[j.company] || 0) + 1; });
  return Object.entries(counts).sort((a, b) => b[1] - a[1]).slice(0, 10);
}

function scoreBuckets(jobs) {
  const r = [0, 0, 0];
  jobs.forEach(j => {
    if (j.match_score < 60) r[0]++;
    else if (j.match_score < 80) r[1]++;
    else r[2]++;
  });
  return r;
}

function initCharts() {
  const top = topCompanies(jobsData);
  companiesChart = new Chart(document.getElementById('companiesChart'), {
    type: 'bar',
    data: {
      labels: top.map(c => c[0]),
      datasets: [{ label: 'Job Postings', data: top.map(c => c[1]), backgroundColor: '#667eea' }]
    },
    options: {
      responsive: true, maintainAspectRatio: false,
      plugins: { title: { display: true, text: 'Top Hiring Companies' } }
    }
  });
  scoresChart = new Chart(document.getElementById('scoresChart'), {
    type: 'doughnut',
    data: {
      labels: ['0-60 (Low)', '60-80 (Medium)', '80-100 (High)'],
      datasets: [{ data: scoreBuckets(jobsData), backgroundColor: ['#95a5a6', '#f39c12', '#2ecc71'] }]
    },
    options: {
      responsive: true, maintainAspectRatio: false,
      plugins: { title: { display: true, text: 'Match Score Distribution' } }
    }
  });
}

function updateCharts(jobs) {
  const top = topCompanies(jobs);
  companiesChart.data.labels = top.map(c => c[0]);
  companiesChart.data.datasets[0].data = top.map(c => c[1]);
  companiesChart.update();
  scoresChart.data.datasets[0].data = scoreBuckets(jobs);
  scoresChart.update();
}

function applyFilters() {
  const minScore = parseInt(document.getElementById('minScore').value);
  const q = document.getElementById('searchInput').value.toLowerCase();
  const company = document.getElementById('companyFilter').value;
  const sortBy = document.getElementById('sortBy').value;

  let filtered = jobsData.filter(j => {
    if ((j.match_score || 0) < minScore) return false;
    if (company && j.company !== company) return false;
    if (q && !JSON.stringify(j).toLowerCase().includes(q)) return false;
    return true;
  });

  filtered.sort((a, b) => {
    if (sortBy === 'score') return b.match_score - a.match_score;
    if (sortBy === 'date') return new Date(b.scraped_date) - new Date(a.scraped_date);
    return a.company.localeCompare(b.company);
  });

  renderJobs(filtered);
  updateStats(filtered);
  updateCharts(filtered);
}

document.getElementById('minScore').addEventListener('input', e => {
  document.getElementById('minScoreValue').textContent = e.target.value;
  applyFilters();
});
document.getElementById('searchInput').addEventListener('input', applyFilters);
document.getElementById('companyFilter').addEventListener('change', applyFilters);
document.getElementById('sortBy').addEventListener('change', applyFilters);

initCharts();
renderJobs(jobsData);
updateStats(jobsData);
</script>
</body>
</html>
`
